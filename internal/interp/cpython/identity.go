package cpython

// setHome tells the interpreter where its standard library and support
// files live. A relocated distribution that skips this goes hunting in
// default install locations and typically fails to find its codec
// tables.
//
// https://docs.python.org/3/c-api/init.html#c.Py_SetPythonHome
func (l *libpython) setHome(home string) error {
	var setPythonHome func(*wchar)
	if err := l.bind(&setPythonHome, "Py_SetPythonHome"); err != nil {
		return err
	}
	setPythonHome(l.retain(encodeWide(home)))
	return nil
}

// setProgramName registers the path the interpreter exposes as the
// running program (sys.executable). Subprocesses spawned by the hosted
// script re-enter through it.
//
// https://docs.python.org/3/c-api/init.html#c.Py_SetProgramName
func (l *libpython) setProgramName(program string) error {
	var setName func(*wchar)
	if err := l.bind(&setName, "Py_SetProgramName"); err != nil {
		return err
	}
	setName(l.retain(encodeWide(program)))
	return nil
}
