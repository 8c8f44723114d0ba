package cellsync

// CommandKind names a host-side effect a handler run produced.
type CommandKind string

const (
	CmdSelectUp       CommandKind = "selectUp"
	CmdSelectDown     CommandKind = "selectDown"
	CmdDeleteCells    CommandKind = "deleteCells"
	CmdClearSelection CommandKind = "clearSelection"
	CmdRunCell        CommandKind = "runCell"
	CmdSetInputHidden CommandKind = "setInputHidden"
	CmdSetMetadata    CommandKind = "setMetadata"
	CmdAddClass       CommandKind = "addClass"
	CmdRemoveClass    CommandKind = "removeClass"
)

// Command is one host-side effect. A handler call against the notebook
// mirror yields an ordered command batch; applying the batch to the real
// document reproduces the mirror's new state.
type Command struct {
	Kind    CommandKind `json:"kind"`
	CellID  string      `json:"cellId,omitempty"`
	CellIDs []string    `json:"cellIds,omitempty"`
	Hidden  bool        `json:"hidden,omitempty"`
	Class   string      `json:"class,omitempty"`
	Record  *CellRecord `json:"record,omitempty"`
}

func (nb *Notebook) record(cmd Command) {
	nb.commands = append(nb.commands, cmd)
}

// DrainCommands returns the commands recorded since the previous drain and
// resets the log.
func (nb *Notebook) DrainCommands() []Command {
	out := nb.commands
	nb.commands = nil
	return out
}
