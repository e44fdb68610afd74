// 指示: miu200521358
// Package mrig は機能ビルダー共通のチェーン探索・形状導出・コンストレイント配線を提供する。
package mrig

import (
	"sort"
	"strings"

	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/model"
	"github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/naming"
)

// ConnectedChain は root から接続済みの子を辿ったチェーンを返す。
// limit が 0 以下の場合は末端まで辿る。
func ConnectedChain(sk *model.Skeleton, root model.BoneIndex, limit int) []model.BoneIndex {
	if _, err := sk.Get(root); err != nil {
		return nil
	}
	chain := []model.BoneIndex{root}
	current := root
	for limit <= 0 || len(chain) < limit {
		next := firstConnectedChild(sk, current)
		if !next.IsValid() {
			break
		}
		chain = append(chain, next)
		current = next
	}
	return chain
}

// firstConnectedChild は接続フラグ付きの最初の子を返す。
func firstConnectedChild(sk *model.Skeleton, parent model.BoneIndex) model.BoneIndex {
	for _, child := range sk.Children(parent) {
		bone, err := sk.Get(child)
		if err == nil && bone.Connected {
			return child
		}
	}
	return model.NoBone
}

// FindDescendant は from 配下を深さ優先で探索し、名前一致のボーンを返す。
func FindDescendant(sk *model.Skeleton, from model.BoneIndex, name string) model.BoneIndex {
	for _, index := range sk.Descendants(from) {
		if sk.NameOf(index) == name {
			return index
		}
	}
	return model.NoBone
}

// findDescendantWithPrefix は from 配下を深さ優先で探索し、名前が prefix で始まるボーンを返す。
func findDescendantWithPrefix(sk *model.Skeleton, from model.BoneIndex, prefix string) model.BoneIndex {
	for _, index := range sk.Descendants(from) {
		if strings.HasPrefix(sk.NameOf(index), prefix) {
			return index
		}
	}
	return model.NoBone
}

// PrefixChain は from 配下で base で始まるボーンを探し、子を base.001, base.002 と辿る。
// 名前が base と一致するボーンを優先する。先頭が base.NNN の場合は続きの連番から辿る。
// 見つかったチェーンと末端ボーンを返す。見つからない場合は末端が NoBone。
func PrefixChain(sk *model.Skeleton, from model.BoneIndex, base string) ([]model.BoneIndex, model.BoneIndex) {
	head := FindDescendant(sk, from, base)
	if !head.IsValid() {
		head = findDescendantWithPrefix(sk, from, base)
	}
	if !head.IsValid() {
		return nil, model.NoBone
	}
	start := 1
	if stem, ordinal, ok := naming.SplitOrdinal(sk.NameOf(head)); ok && stem == base {
		start = ordinal + 1
	}
	chain := []model.BoneIndex{head}
	current := head
	for ordinal := start; ; ordinal++ {
		next := childNamed(sk, current, naming.WithOrdinal(base, ordinal))
		if !next.IsValid() {
			break
		}
		chain = append(chain, next)
		current = next
	}
	return chain, current
}

func childNamed(sk *model.Skeleton, parent model.BoneIndex, name string) model.BoneIndex {
	for _, child := range sk.Children(parent) {
		if sk.NameOf(child) == name {
			return child
		}
	}
	return model.NoBone
}

// SplitSymmetricBones はボーン集合を左右に分割する。結果は名前順。
func SplitSymmetricBones(sk *model.Skeleton, bones []model.BoneIndex) ([]model.BoneIndex, []model.BoneIndex) {
	names := make([]string, 0, len(bones))
	for _, index := range bones {
		names = append(names, sk.NameOf(index))
	}
	leftNames, rightNames := naming.SplitSymmetric(names)
	return indexesOf(sk, leftNames), indexesOf(sk, rightNames)
}

func indexesOf(sk *model.Skeleton, names []string) []model.BoneIndex {
	out := make([]model.BoneIndex, 0, len(names))
	for _, name := range names {
		if index := sk.IndexOf(name); index.IsValid() {
			out = append(out, index)
		}
	}
	return out
}

// Siblings は同じ親を持つボーンを登録順で返す。自身を含む。
func Siblings(sk *model.Skeleton, index model.BoneIndex) []model.BoneIndex {
	bone, err := sk.Get(index)
	if err != nil {
		return nil
	}
	return sk.Children(bone.ParentIndex)
}

// SortByDistance は基準点からヘッドまでの距離順に並べ替える。同距離は名前順。
func SortByDistance(sk *model.Skeleton, bones []model.BoneIndex, origin model.BoneIndex) []model.BoneIndex {
	base, err := sk.Get(origin)
	if err != nil {
		return bones
	}
	out := append([]model.BoneIndex(nil), bones...)
	sort.SliceStable(out, func(i, j int) bool {
		a, _ := sk.Get(out[i])
		b, _ := sk.Get(out[j])
		da := a.Head.Distance(base.Head)
		db := b.Head.Distance(base.Head)
		if da != db {
			return da < db
		}
		return a.Name < b.Name
	})
	return out
}
