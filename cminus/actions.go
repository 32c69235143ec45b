package cminus

import (
	"fmt"
	"strings"
)

// ActionKind enumerates the semantic actions the grammar may attach to
// transition-diagram edges. The set is closed: grammar loading fails fast
// on a marker that names no kind.
type ActionKind int

const (
	ActionPushNum ActionKind = iota
	ActionPushID
	ActionPushRV
	ActionPushArray
	ActionPushOperand
	ActionPushZero
	ActionPop
	ActionHold
	ActionLabel
	ActionAssignStack
	ActionOperandExec
	ActionIfDecide
	ActionWhileJump
	ActionDefineID
	ActionDefineArray
	ActionDefineFunction
	ActionMainFunction
	ActionScopeStart
	ActionScopeFinish
	ActionFunctionFrame
	ActionFunctionInputStart
	ActionFunctionInputFinish
	ActionFunctionInputPass
	ActionFunctionCall
	ActionFunctionReturn
	ActionJumpPlaceholder
	ActionBackpatchJump
)

var actionNames = map[string]ActionKind{
	"push_num":              ActionPushNum,
	"push_id":               ActionPushID,
	"push_rv":               ActionPushRV,
	"push_array":            ActionPushArray,
	"push_operand":          ActionPushOperand,
	"push_zero":             ActionPushZero,
	"pop":                   ActionPop,
	"hold":                  ActionHold,
	"label":                 ActionLabel,
	"assign_stack":          ActionAssignStack,
	"operand_exec":          ActionOperandExec,
	"if_decide":             ActionIfDecide,
	"while_jump":            ActionWhileJump,
	"define_id":             ActionDefineID,
	"define_array":          ActionDefineArray,
	"define_function":       ActionDefineFunction,
	"main_function":         ActionMainFunction,
	"scope_start":           ActionScopeStart,
	"scope_finish":          ActionScopeFinish,
	"function_frame":        ActionFunctionFrame,
	"function_input_start":  ActionFunctionInputStart,
	"function_input_finish": ActionFunctionInputFinish,
	"function_input_pass":   ActionFunctionInputPass,
	"function_call":         ActionFunctionCall,
	"function_return":       ActionFunctionReturn,
	"jump_placeholder":      ActionJumpPlaceholder,
	"backpatch_jump":        ActionBackpatchJump,
}

// Action is one parsed semantic-action marker. Arg carries the scope-frame
// kind for the scope and jump actions, and is empty otherwise.
type Action struct {
	Kind ActionKind
	Arg  string
}

// parseAction decodes a grammar marker of the form "#name" or
// "#name(arg)".
func parseAction(marker string) (Action, error) {
	body := strings.TrimPrefix(marker, "#")
	name := body
	arg := ""
	if open := strings.IndexByte(body, '('); open >= 0 {
		end := strings.LastIndexByte(body, ')')
		if end < open {
			return Action{}, fmt.Errorf("malformed action marker %q", marker)
		}
		name = body[:open]
		arg = strings.TrimSpace(body[open+1 : end])
	}
	kind, ok := actionNames[name]
	if !ok {
		return Action{}, fmt.Errorf("unknown action %q", marker)
	}
	return Action{Kind: kind, Arg: arg}, nil
}

func isActionMarker(symbol string) bool {
	return strings.HasPrefix(symbol, "#")
}
