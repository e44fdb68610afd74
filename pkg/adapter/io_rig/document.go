// 指示: miu200521358
package io_rig

// metarigDocument はメタリグ文書の最上位要素を表す。
type metarigDocument struct {
	Name  string        `yaml:"name" json:"name"`
	Bones []metarigBone `yaml:"bones" json:"bones"`
}

// metarigBone はメタリグ文書の1ボーンを表す。
type metarigBone struct {
	Name      string         `yaml:"name" json:"name"`
	Parent    string         `yaml:"parent,omitempty" json:"parent,omitempty"`
	Head      []float64      `yaml:"head,flow" json:"head"`
	Tail      []float64      `yaml:"tail,flow" json:"tail"`
	Roll      float64        `yaml:"roll,omitempty" json:"roll,omitempty"`
	Connected bool           `yaml:"connected,omitempty" json:"connected,omitempty"`
	Deform    *bool          `yaml:"deform,omitempty" json:"deform,omitempty"`
	Layers    []int          `yaml:"layers,flow,omitempty" json:"layers,omitempty"`
	RigType   string         `yaml:"rig_type,omitempty" json:"rig_type,omitempty"`
	Params    map[string]any `yaml:"params,omitempty" json:"params,omitempty"`
}

// rigDocument は生成済みリグ文書の最上位要素を表す。
type rigDocument struct {
	Name    string        `yaml:"name" json:"name"`
	RunID   string        `yaml:"run_id,omitempty" json:"run_id,omitempty"`
	Bones   []rigBone     `yaml:"bones" json:"bones"`
	Drivers []rigDriver   `yaml:"drivers,omitempty" json:"drivers,omitempty"`
	Panel   []rigPanelRow `yaml:"panel,omitempty" json:"panel,omitempty"`
}

// rigBone は生成済みリグの1ボーンを表す。
type rigBone struct {
	Name        string          `yaml:"name" json:"name"`
	Role        string          `yaml:"role" json:"role"`
	Parent      string          `yaml:"parent,omitempty" json:"parent,omitempty"`
	Head        []float64       `yaml:"head,flow" json:"head"`
	Tail        []float64       `yaml:"tail,flow" json:"tail"`
	Roll        float64         `yaml:"roll,omitempty" json:"roll,omitempty"`
	Connected   bool            `yaml:"connected,omitempty" json:"connected,omitempty"`
	Deform      bool            `yaml:"deform" json:"deform"`
	Layers      []int           `yaml:"layers,flow,omitempty" json:"layers,omitempty"`
	Locks       *rigLocks       `yaml:"locks,omitempty" json:"locks,omitempty"`
	Widget      string          `yaml:"widget,omitempty" json:"widget,omitempty"`
	RigType     string          `yaml:"rig_type,omitempty" json:"rig_type,omitempty"`
	Constraints []rigConstraint `yaml:"constraints,omitempty" json:"constraints,omitempty"`
	Properties  []rigProperty   `yaml:"properties,omitempty" json:"properties,omitempty"`
}

// rigLocks はロック軸を軸名の列で表す。
type rigLocks struct {
	Location string `yaml:"location,omitempty" json:"location,omitempty"`
	Rotation string `yaml:"rotation,omitempty" json:"rotation,omitempty"`
	Scale    string `yaml:"scale,omitempty" json:"scale,omitempty"`
}

// rigConstraint は生成済みリグのコンストレイントを表す。
type rigConstraint struct {
	Name        string    `yaml:"name" json:"name"`
	Type        string    `yaml:"type" json:"type"`
	Target      string    `yaml:"target,omitempty" json:"target,omitempty"`
	Influence   float64   `yaml:"influence" json:"influence"`
	OwnerSpace  string    `yaml:"owner_space" json:"owner_space"`
	TargetSpace string    `yaml:"target_space" json:"target_space"`
	UseOffset   bool      `yaml:"use_offset,omitempty" json:"use_offset,omitempty"`
	Axes        string    `yaml:"axes,omitempty" json:"axes,omitempty"`
	Invert      string    `yaml:"invert,omitempty" json:"invert,omitempty"`
	HeadTail    float64   `yaml:"head_tail,omitempty" json:"head_tail,omitempty"`
	ChainCount  int       `yaml:"chain_count,omitempty" json:"chain_count,omitempty"`
	UseStretch  bool      `yaml:"use_stretch,omitempty" json:"use_stretch,omitempty"`
	PoleTarget  string    `yaml:"pole_target,omitempty" json:"pole_target,omitempty"`
	RestLength  float64   `yaml:"rest_length,omitempty" json:"rest_length,omitempty"`
	LimitAxes   string    `yaml:"limit_axes,omitempty" json:"limit_axes,omitempty"`
	LimitMin    []float64 `yaml:"limit_min,flow,omitempty" json:"limit_min,omitempty"`
	LimitMax    []float64 `yaml:"limit_max,flow,omitempty" json:"limit_max,omitempty"`
	TrackAxis   string    `yaml:"track_axis,omitempty" json:"track_axis,omitempty"`
	VolumeMode  string    `yaml:"volume_mode,omitempty" json:"volume_mode,omitempty"`
}

// rigProperty はボーンに公開したプロパティを表す。
type rigProperty struct {
	Name        string  `yaml:"name" json:"name"`
	Default     float64 `yaml:"default" json:"default"`
	Min         float64 `yaml:"min" json:"min"`
	Max         float64 `yaml:"max" json:"max"`
	Description string  `yaml:"description,omitempty" json:"description,omitempty"`
}

// rigDriver はコンストレイント影響度のドライバーを表す。
type rigDriver struct {
	Bone         string              `yaml:"bone" json:"bone"`
	Constraint   int                 `yaml:"constraint" json:"constraint"`
	Path         string              `yaml:"path" json:"path"`
	Kind         string              `yaml:"kind" json:"kind"`
	Expression   string              `yaml:"expression" json:"expression"`
	Variables    []rigDriverVariable `yaml:"variables" json:"variables"`
	Coefficients []float64           `yaml:"coefficients,flow,omitempty" json:"coefficients,omitempty"`
}

// rigDriverVariable はドライバー変数を表す。
type rigDriverVariable struct {
	Name     string `yaml:"name" json:"name"`
	Bone     string `yaml:"bone" json:"bone"`
	Property string `yaml:"property" json:"property"`
}

// rigPanelRow はアニメーター向けパネル行を表す。
type rigPanelRow struct {
	Bone     string `yaml:"bone" json:"bone"`
	Property string `yaml:"property" json:"property"`
	Label    string `yaml:"label" json:"label"`
}
