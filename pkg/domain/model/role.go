// 指示: miu200521358
package model

import "github.com/SAM-tak/BlenderGameRig-sub000/pkg/domain/naming"

// Role はボーンの役割を表す。
type Role int

const (
	// ROLE_SOURCE はメタリグで作者が配置した元ボーン。
	ROLE_SOURCE Role = iota
	// ROLE_CONTROL はアニメーターが直接操作するコントロール。
	ROLE_CONTROL
	// ROLE_MECHANISM は内部計算用の機構ボーン。
	ROLE_MECHANISM
	// ROLE_MECHANISM_TARGET はIK目標などの機構ターゲット。
	ROLE_MECHANISM_TARGET
	// ROLE_TWEAK は微調整用コントロール。
	ROLE_TWEAK
)

// Roles は全役割の一覧。
var Roles = []Role{ROLE_SOURCE, ROLE_CONTROL, ROLE_MECHANISM, ROLE_MECHANISM_TARGET, ROLE_TWEAK}

// String は役割名を返す。
func (r Role) String() string {
	switch r {
	case ROLE_CONTROL:
		return "control"
	case ROLE_MECHANISM:
		return "mechanism"
	case ROLE_MECHANISM_TARGET:
		return "mechanism-target"
	case ROLE_TWEAK:
		return "tweak"
	default:
		return "source"
	}
}

// Prefix は役割に対応する名前接頭辞を返す。
func (r Role) Prefix() string {
	switch r {
	case ROLE_CONTROL:
		return naming.PrefixControl
	case ROLE_MECHANISM:
		return naming.PrefixMechanism
	case ROLE_MECHANISM_TARGET:
		return naming.PrefixMechanismTarget
	case ROLE_TWEAK:
		return naming.PrefixTweak
	default:
		return ""
	}
}

// RoleFromName は名前接頭辞から役割を推定する。
func RoleFromName(name string) Role {
	prefix, _ := naming.SplitPrefix(name)
	switch prefix {
	case naming.PrefixControl:
		return ROLE_CONTROL
	case naming.PrefixMechanism:
		return ROLE_MECHANISM
	case naming.PrefixMechanismTarget:
		return ROLE_MECHANISM_TARGET
	case naming.PrefixTweak:
		return ROLE_TWEAK
	default:
		return ROLE_SOURCE
	}
}

// ParseRole は役割名から役割を返す。
func ParseRole(value string) (Role, bool) {
	for _, role := range Roles {
		if role.String() == value {
			return role, true
		}
	}
	return ROLE_SOURCE, false
}
