package entity

import "strings"

type keyword struct {
	word  string
	label Label
}

// Порядок важен: побеждает первое найденное слово.
var labelKeywords = []keyword{
	{"crack", LabelCrack},
	{"leak", LabelLeak},
	{"damp", LabelDamp},
	{"mold", LabelMold},
	{"exposed_wiring", LabelExposedWiring},
	{"wiring", LabelExposedWiring},
	{"ok", LabelOK},
}

var filenameHints = []keyword{
	{"wire", LabelExposedWiring},
	{"damp", LabelDamp},
	{"stain", LabelDamp},
	{"crack", LabelCrack},
	{"leak", LabelLeak},
	{"water", LabelLeak},
}

// LabelFromFilename угадывает метку по имени файла, когда само фото недоступно.
func LabelFromFilename(name string) Label {
	name = strings.ToLower(name)
	if l, ok := matchKeyword(name, labelKeywords); ok {
		return l
	}
	if l, ok := matchKeyword(name, filenameHints); ok {
		return l
	}
	return LabelOK
}

// LabelFromNotes угадывает метку по тексту заметок осмотра
func LabelFromNotes(notes string) Label {
	if l, ok := matchKeyword(strings.ToLower(notes), labelKeywords); ok {
		return l
	}
	return LabelOK
}

func matchKeyword(s string, words []keyword) (Label, bool) {
	for _, k := range words {
		if strings.Contains(s, k.word) {
			return k.label, true
		}
	}
	return "", false
}
