package site

import "github.com/dop251/goja"

// CheckScript parses code as the body of a function, which is how request
// scripts and tests run. Empty code is valid.
func CheckScript(name, code string) error {
	if code == "" {
		return nil
	}
	_, err := goja.Parse(name+".js", "(function(){\n"+code+"\n})();")
	return err
}
