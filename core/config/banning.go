package config

import (
	"github.com/dop251/goja"
)

// A month, in minutes.
const defaultBanDuration = 30 * 24 * 60

// BanRule config def.
type BanRule struct {
	Code string `toml:"effects" json:"-"`
}

// BanEffects def.
type BanEffects struct {
	Duration int64
}

// Effects from config. The script receives banN (bans served so far) and
// must set exports.duration in minutes.
func (re BanRule) Effects(times int) (BanEffects, error) {
	if len(re.Code) == 0 {
		return BanEffects{defaultBanDuration}, nil
	}
	vm := goja.New()
	vm.RunString(`
		var exports = {};
	`)
	vm.Set("banN", times)
	if _, err := vm.RunString(re.Code); err != nil {
		return BanEffects{}, err
	}
	obj := vm.Get("exports").ToObject(vm)
	duration := obj.Get("duration")
	if duration == nil || duration.Export() == nil {
		return BanEffects{defaultBanDuration}, nil
	}
	return BanEffects{duration.ToInteger()}, nil
}
