package serialize

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gotox/internal/program"
)

// Symbol is the JSON form of one symbol, with the field names goto-cc and
// symtab2gb use.
type Symbol struct {
	Name             string `json:"name"`
	BaseName         string `json:"baseName"`
	PrettyName       string `json:"prettyName"`
	Module           string `json:"module"`
	Mode             string `json:"mode"`
	Type             *Irep  `json:"type"`
	Value            *Irep  `json:"value"`
	Location         *Irep  `json:"location"`
	IsType           bool   `json:"isType"`
	IsMacro          bool   `json:"isMacro"`
	IsExported       bool   `json:"isExported"`
	IsInput          bool   `json:"isInput"`
	IsOutput         bool   `json:"isOutput"`
	IsStateVar       bool   `json:"isStateVar"`
	IsProperty       bool   `json:"isProperty"`
	IsStaticLifetime bool   `json:"isStaticLifetime"`
	IsThreadLocal    bool   `json:"isThreadLocal"`
	IsLvalue         bool   `json:"isLvalue"`
	IsFileLocal      bool   `json:"isFileLocal"`
	IsExtern         bool   `json:"isExtern"`
	IsVolatile       bool   `json:"isVolatile"`
	IsParameter      bool   `json:"isParameter"`
	IsAuxiliary      bool   `json:"isAuxiliary"`
	IsWeak           bool   `json:"isWeak"`
}

// Mode is the language mode recorded on every symbol.
const Mode = "C"

// ConvertSymbol builds the JSON form of sym for the given machine.
func ConvertSymbol(machine program.MachineModel, sym *program.Symbol) (*Symbol, error) {
	c := &converter{machine: machine}
	t, err := c.typ(sym.Type)
	if err != nil {
		return nil, fmt.Errorf("symbol %s: %w", sym.Name, err)
	}
	value := Nil()
	switch {
	case sym.Body != nil:
		if value, err = c.stmt(sym.Body); err != nil {
			return nil, fmt.Errorf("symbol %s: %w", sym.Name, err)
		}
	case sym.Value != nil:
		if value, err = c.expr(sym.Value); err != nil {
			return nil, fmt.Errorf("symbol %s: %w", sym.Name, err)
		}
	}

	return &Symbol{
		Name:             sym.Name,
		BaseName:         sym.BaseName,
		PrettyName:       sym.PrettyName,
		Module:           sym.Module,
		Mode:             Mode,
		Type:             t,
		Value:            value,
		Location:         location(sym.Location),
		IsType:           sym.IsType,
		IsStaticLifetime: sym.IsStaticLifetime,
		IsThreadLocal:    sym.IsThreadLocal,
		IsLvalue:         sym.IsLValue,
		IsFileLocal:      sym.IsFileLocal,
		IsExtern:         sym.IsExtern,
		IsParameter:      sym.IsParameter,
		IsAuxiliary:      sym.IsAuxiliary,
	}, nil
}

// Marshal writes table as a compact {"symbolTable": {...}} document. Symbols appear
// in table order; equal tables give identical bytes.
func Marshal(table *program.SymbolTable) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"symbolTable":{`)
	for i, sym := range table.Symbols() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(sym.Name)
		if err != nil {
			return nil, err
		}
		js, err := ConvertSymbol(table.Machine, sym)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(js)
		if err != nil {
			return nil, fmt.Errorf("symbol %s: %w", sym.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteString("}}")
	return buf.Bytes(), nil
}

// WriteJSON writes table to w, indented by two spaces.
func WriteJSON(w io.Writer, table *program.SymbolTable) error {
	data, err := Marshal(table)
	if err != nil {
		return err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		return fmt.Errorf("failed to indent JSON: %w", err)
	}
	out.WriteByte('\n')
	_, err = out.WriteTo(w)
	return err
}
