package models

// ScriptStep is one entry of a replay script. Only the fields the action needs are set.
type ScriptStep struct {
	Action    string   `yaml:"action" json:"action" validate:"required"`
	Mode      string   `yaml:"mode,omitempty" json:"mode,omitempty"`
	ID        string   `yaml:"id,omitempty" json:"id,omitempty"`
	IDs       []string `yaml:"ids,omitempty" json:"ids,omitempty"`
	Col       int      `yaml:"col,omitempty" json:"col,omitempty"`
	Row       int      `yaml:"row,omitempty" json:"row,omitempty"`
	X         float64  `yaml:"x,omitempty" json:"x,omitempty"`
	Z         float64  `yaml:"z,omitempty" json:"z,omitempty"`
	Equipment string   `yaml:"equipment,omitempty" json:"equipment,omitempty"`
	UStart    int      `yaml:"u_start,omitempty" json:"u_start,omitempty"`
}
