package document

import "strings"

// styleProperty returns the value of property in an inline style
// attribute, or "" when it is not declared.
func styleProperty(style, property string) string {
	value := ""
	for _, decl := range strings.Split(style, ";") {
		name, v, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(name), property) {
			value = strings.TrimSpace(v)
		}
	}
	return value
}

// setStyleProperty declares property: value in style, replacing any
// earlier declaration and keeping the others in place.
func setStyleProperty(style, property, value string) string {
	var decls []string
	replaced := false
	for _, decl := range strings.Split(style, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		name, _, ok := strings.Cut(decl, ":")
		if ok && strings.EqualFold(strings.TrimSpace(name), property) {
			if replaced {
				continue
			}
			decl = property + ": " + value
			replaced = true
		}
		decls = append(decls, decl)
	}
	if !replaced {
		decls = append(decls, property+": "+value)
	}
	return strings.Join(decls, "; ") + ";"
}
