package system

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

func logResult(l logger, err error, failed, done string) error {
	if l == nil {
		return err
	}
	if err != nil {
		l.Errorf("tty", "%s: %v", failed, err)
	} else {
		l.Infof("tty", "%s", done)
	}
	return err
}

func SetGraphicsModeWithLog(l logger) error {
	return logResult(l, SetGraphicsMode(), "KD_GRAPHICS failed", "KD_GRAPHICS set")
}

func RestoreTextModeWithLog(l logger) error {
	return logResult(l, RestoreTextMode(), "KD_TEXT failed", "KD_TEXT set")
}

func HideCursorWithLog(l logger) error {
	return logResult(l, HideCursor(), "hide cursor failed", "cursor hidden")
}

func ShowCursorWithLog(l logger) error {
	return logResult(l, ShowCursor(), "show cursor failed", "cursor shown")
}
