package conversation

type Kind int

const (
	// KindReply carries the assistant's answer verbatim.
	KindReply Kind = iota
	// KindAskUser means the user must choose between resuming the old
	// conversation and starting a new one.
	KindAskUser
	// KindRequiresAction means the assistant needs more information
	// before it can answer.
	KindRequiresAction
)

type Result struct {
	Kind  Kind
	Reply string
}

func ReplyResult(text string) Result {
	return Result{Kind: KindReply, Reply: text}
}

func AskUserResult() Result {
	return Result{Kind: KindAskUser}
}

func RequiresActionResult() Result {
	return Result{Kind: KindRequiresAction}
}
