package entity

import "context"

type HandlerFunction func(context.Context, *CommandRequest) error

type PanicFunction func(ctx context.Context, msg, stack, command string, args []string) error
