package lsp

import (
	"fmt"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"gotox/grammar"
	"gotox/internal/program"
)

var primitiveTypes = []string{
	"bool", "void",
	"i8", "i16", "i32", "i64",
	"u8", "u16", "u32", "u64",
	"f32", "f64",
}

func completionItems(table *program.SymbolTable) []protocol.CompletionItem {
	items := []protocol.CompletionItem{}
	for _, k := range grammar.Keywords {
		items = append(items, protocol.CompletionItem{
			Label: k,
			Kind:  ptrCompletionKind(protocol.CompletionItemKindKeyword),
		})
	}
	for _, t := range primitiveTypes {
		items = append(items, protocol.CompletionItem{
			Label: t,
			Kind:  ptrCompletionKind(protocol.CompletionItemKindTypeParameter),
		})
	}
	if table == nil {
		return items
	}

	for _, sym := range table.Symbols() {
		kind := protocol.CompletionItemKindVariable
		switch {
		case sym.IsType:
			kind = protocol.CompletionItemKindStruct
		case sym.IsParameter:
			kind = protocol.CompletionItemKindField
		default:
			if _, ok := sym.Type.(*program.CodeType); ok {
				kind = protocol.CompletionItemKindFunction
			}
		}
		detail := fmt.Sprint(sym.Type)
		items = append(items, protocol.CompletionItem{
			Label:      sym.Name,
			Kind:       ptrCompletionKind(kind),
			Detail:     &detail,
			InsertText: ptrString(program.FormatName(sym.Name)),
		})
	}
	return items
}

func ptrCompletionKind(k protocol.CompletionItemKind) *protocol.CompletionItemKind {
	return &k
}
