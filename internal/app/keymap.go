package app

// Key binding constants used in handleKey.
const (
	KeyQuit       = "q"
	KeyQuitUpper  = "Q"
	KeyCtrlC      = "ctrl+c"
	KeySpace      = " "
	KeyTab        = "tab"
	KeyEnter      = "enter"
	KeyEsc        = "esc"
	KeyBackspace  = "backspace"
	KeyEdit       = "e"
	KeyCamera     = "c"
	KeyMicrophone = "m"
	KeyRetry      = "r"
	KeyExit       = "x"
	KeyConfirmYes = "y"
	KeyConfirmNo  = "n"
)
