// 指示: miu200521358
package face

import (
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/model"
)

// constraintRef はドライバーを受けるコンストレイントの位置。
type constraintRef struct {
	owner      model.BoneIndex
	constraint int
}

// followProperty は追従プロパティの公開定義。
type followProperty struct {
	Name    string
	Label   string
	Default float64
	Desc    string
}

// followProperties は公開順の追従プロパティ。
var followProperties = []followProperty{
	{Name: model.PropMouthLock, Label: model.LabelMouthLock, Default: 0, Desc: "Keep lips closed while the jaw opens"},
	{Name: model.PropChinFollow, Label: model.LabelChinFollow, Default: 1, Desc: "Chin follows the jaw"},
	{Name: model.PropTongueFollow, Label: model.LabelTongueFollow, Default: 1, Desc: "Tongue follows the jaw"},
	{Name: model.PropEyesFollow, Label: model.LabelEyesFollow, Default: 1, Desc: "Eye targets follow the face"},
}

// addFollow は追従プロパティで駆動するコンストレイントを登録する。
func (f *faceRig) addFollow(property string, owner model.BoneIndex, constraint int) {
	if constraint < 0 {
		return
	}
	f.follows[property] = append(f.follows[property], constraintRef{owner: owner, constraint: constraint})
}

// propertyOwner はプロパティを載せるコントロールを返す。視線は視線マスター、他は顎マスター。
func (f *faceRig) propertyOwner(property string) *model.Bone {
	if property == model.PropEyesFollow {
		return f.eyesMaster
	}
	return f.jawMaster
}

// bindFollowDrivers は登録済みの追従コンストレイントへ Sum ドライバーを結線する。
func (f *faceRig) bindFollowDrivers() {
	drive := f.ri.Drive()
	for _, prop := range followProperties {
		refs := f.follows[prop.Name]
		owner := f.propertyOwner(prop.Name)
		if len(refs) == 0 || owner == nil {
			continue
		}
		source := drive.Expose(owner.Index(), model.NewRateProperty(prop.Name, prop.Default, prop.Desc))
		for _, ref := range refs {
			drive.Sum(ref.owner, ref.constraint, source)
		}
		f.ri.AddUIRow(owner.Index(), prop.Name, prop.Label)
		logFaceVerbose("追従ドライバー: %s owner=%s targets=%d", prop.Name, owner.Name, len(refs))
	}
}
