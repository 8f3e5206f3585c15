package execshell

// CommandEventObserver is notified about every command the executor handles.
type CommandEventObserver interface {
	CommandStarted(command ShellCommand)
	CommandCompleted(command ShellCommand, result ExecutionResult)
	CommandExecutionFailed(command ShellCommand, failure error)
	// CommandSimulated fires instead of the other events when a dry run skips the command.
	CommandSimulated(command ShellCommand)
}

type noopCommandEventObserver struct{}

func (noopCommandEventObserver) CommandStarted(ShellCommand)                    {}
func (noopCommandEventObserver) CommandCompleted(ShellCommand, ExecutionResult) {}
func (noopCommandEventObserver) CommandExecutionFailed(ShellCommand, error)     {}
func (noopCommandEventObserver) CommandSimulated(ShellCommand)                  {}
