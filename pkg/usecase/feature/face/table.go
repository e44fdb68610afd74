// 指示: miu200521358
package face

// LayerGroup はツイークの表示レイヤー区分。
type LayerGroup int

const (
	// LAYER_PRIMARY は口元・鼻・顎・舌の主ツイーク。
	LAYER_PRIMARY LayerGroup = iota
	// LAYER_SECONDARY はそれ以外の副ツイーク。
	LAYER_SECONDARY
)

// subChainDef は顔ルート配下で探索する名前付きサブチェーンの定義。
type subChainDef struct {
	Key        string
	SearchFrom string
	Group      LayerGroup
	Tweaks     bool
}

// subChainTable は探索順のサブチェーン一覧。
// SearchFrom のチェーンが無い場合は顔ルートから探す。
var subChainTable = []subChainDef{
	{Key: "nose", Group: LAYER_PRIMARY, Tweaks: true},
	{Key: "lip.T.L", Group: LAYER_PRIMARY, Tweaks: true},
	{Key: "lip.T.R", Group: LAYER_PRIMARY, Tweaks: true},
	{Key: "lip.B.L", Group: LAYER_PRIMARY, Tweaks: true},
	{Key: "lip.B.R", Group: LAYER_PRIMARY, Tweaks: true},
	{Key: "jaw", Group: LAYER_PRIMARY},
	{Key: "chin", SearchFrom: "jaw", Group: LAYER_PRIMARY, Tweaks: true},
	{Key: "ear.L", Group: LAYER_SECONDARY, Tweaks: true},
	{Key: "ear.R", Group: LAYER_SECONDARY, Tweaks: true},
	{Key: "lid.T.L", Group: LAYER_SECONDARY, Tweaks: true},
	{Key: "lid.B.L", Group: LAYER_SECONDARY, Tweaks: true},
	{Key: "lid.T.R", Group: LAYER_SECONDARY, Tweaks: true},
	{Key: "lid.B.R", Group: LAYER_SECONDARY, Tweaks: true},
	{Key: "brow.B.L", Group: LAYER_SECONDARY, Tweaks: true},
	{Key: "brow.B.R", Group: LAYER_SECONDARY, Tweaks: true},
	{Key: "temple.L", Group: LAYER_SECONDARY, Tweaks: true},
	{Key: "temple.R", Group: LAYER_SECONDARY, Tweaks: true},
	{Key: "cheek.B.L", SearchFrom: "temple.L", Group: LAYER_SECONDARY, Tweaks: true},
	{Key: "cheek.B.R", SearchFrom: "temple.R", Group: LAYER_SECONDARY, Tweaks: true},
	{Key: "brow.T.L", SearchFrom: "cheek.B.L", Group: LAYER_SECONDARY, Tweaks: true},
	{Key: "brow.T.R", SearchFrom: "cheek.B.R", Group: LAYER_SECONDARY, Tweaks: true},
	{Key: "cheek.T.L", Group: LAYER_SECONDARY, Tweaks: true},
	{Key: "cheek.T.R", Group: LAYER_SECONDARY, Tweaks: true},
	{Key: "eye.L", Group: LAYER_SECONDARY},
	{Key: "eye.R", Group: LAYER_SECONDARY},
	{Key: "tongue", SearchFrom: "jaw", Group: LAYER_PRIMARY, Tweaks: true},
}

// 口元の顎追従段階。段階 0 は顎と完全一致し、以降は減衰する。
var jawLevels = []float64{1.0, 0.75, 0.5, 0.25, 0.1, 0.025}

// mouthLockLevels は口閉じ固定で段階 0 に寄せる顎追従段階。
var mouthLockLevels = []int{2, 3, 4}

// specialParent は生成ボーン名どうしの固定親子指定。
type specialParent struct {
	Child  string
	Parent string
}

// specialParents は一般規則の後に適用する親子指定。
// 親子どちらかが生成されていない行は読み飛ばす。
var specialParents = []specialParent{
	{Child: "TWK-lip.B", Parent: "MCH-jaw_master"},
	{Child: "TWK-lip.B.L.001", Parent: "MCH-jaw_master.001"},
	{Child: "TWK-lip.B.R.001", Parent: "MCH-jaw_master.001"},
	{Child: "TWK-lips.L", Parent: "MCH-jaw_master.002"},
	{Child: "TWK-lips.R", Parent: "MCH-jaw_master.002"},
	{Child: "TWK-lip.T.L.001", Parent: "MCH-jaw_master.003"},
	{Child: "TWK-lip.T.R.001", Parent: "MCH-jaw_master.003"},
	{Child: "TWK-lip.T", Parent: "MCH-jaw_master.004"},
	{Child: "TWK-cheek.B.L.001", Parent: "MCH-jaw_master.005"},
	{Child: "TWK-cheek.B.R.001", Parent: "MCH-jaw_master.005"},
	{Child: "TWK-chin", Parent: "MCH-chin"},
	{Child: "TWK-chin.001", Parent: "MCH-chin"},
	{Child: "TWK-chin_end", Parent: "MCH-chin"},
	{Child: "TWK-nose.002", Parent: "CTRL-nose_master"},
	{Child: "TWK-nose_end", Parent: "CTRL-nose_master"},
	{Child: "CTRL-tongue_master", Parent: "MCH-tongue"},
	{Child: "CTRL-eyes", Parent: "MCH-eyes_parent"},
}
