package config

import (
	"github.com/BurntSushi/toml"
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("config")

// Rules drive authorization and moderation behaviour.
type Rules struct {
	Roles map[string]RoleRule `toml:"roles" json:"roles"`
	Flags FlagRules           `toml:"flags" json:"flags"`
	Ban   BanRule             `toml:"ban" json:"ban"`
}

// RoleRule lists the permissions granted to a role.
type RoleRule struct {
	Permissions []string `toml:"permissions" json:"permissions"`
	Inherits    []string `toml:"inherits" json:"inherits,omitempty"`
}

// FlagRules config def.
type FlagRules struct {
	DailyLimit int                   `toml:"daily_limit" json:"daily_limit"`
	Reasons    map[string]FlagReason `toml:"reasons" json:"reasons"`
}

// FlagReason labels shown to reporters.
type FlagReason struct {
	Label       string `toml:"label" json:"label"`
	Description string `toml:"description" json:"description"`
}

const defaultRules = `
[roles.user]
permissions = ["flags:file"]

[roles.moderator]
permissions = ["flags:review", "flags:list", "users:list", "users:ban"]
inherits = ["user"]

[roles.admin]
permissions = ["users:role"]
inherits = ["moderator"]

[flags]
daily_limit = 0

[flags.reasons.spam]
label = "Spam"
description = "This content is an advertisement, or vandalism"

[flags.reasons.rude_or_abusive]
label = "Rude or abusive"
description = "This content contains offensive language or personal attacks"

[flags.reasons.low_quality]
label = "Very low quality"
description = "This content is not salvageable through editing"

[flags.reasons.off_topic]
label = "Off-topic"
description = "This content is not relevant to the community"

[flags.reasons.needs_improvement]
label = "Needs improvement"
description = "This content needs significant editing or clarification"

[flags.reasons.plagiarism]
label = "Plagiarism"
description = "This content is copied from elsewhere without proper attribution"

[flags.reasons.other]
label = "Other"
description = "This content needs moderator attention for another reason"

[ban]
effects = "exports.duration = 30 * 24 * 60;"
`

// Defaults returns the built-in rules.
func Defaults() Rules {
	var r Rules
	if _, err := toml.Decode(defaultRules, &r); err != nil {
		panic(err)
	}
	return r
}

// LoadRules reads file on top of the built-in rules.
func LoadRules(file string) (Rules, error) {
	r := Defaults()
	if file == "" {
		return r, nil
	}
	if _, err := toml.DecodeFile(file, &r); err != nil {
		return r, err
	}
	return r, nil
}
