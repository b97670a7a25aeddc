package transform

import (
	"fmt"

	glua "github.com/yuin/gopher-lua"

	"github.com/dshills/richline/internal/markup"
	"github.com/dshills/richline/internal/plugin/lua"
)

// LuaFunction is the global a script must define. It receives one line and
// returns a list of segments, each either a string or a table
// {text = "...", class = "..."}:
//
//	function transform(line)
//	  local out = {}
//	  for word, space in line:gmatch("(%S*)(%s*)") do
//	    if word:sub(1, 1) == "#" then
//	      table.insert(out, {text = word, class = "tag"})
//	    else
//	      table.insert(out, word)
//	    end
//	    table.insert(out, space)
//	  end
//	  return out
//	end
const LuaFunction = "transform"

// Lua renders lines with a user script.
type Lua struct {
	state *lua.State
	line  Transform
}

// NewLua wraps a state whose script has already been loaded.
func NewLua(state *lua.State) (*Lua, error) {
	if !state.HasFunction(LuaFunction) {
		return nil, fmt.Errorf("lua transform: %w: %q", lua.ErrFunctionNotFound, LuaFunction)
	}
	l := &Lua{state: state}
	l.line = ByLine(l.segments)
	return l, nil
}

// LoadLua creates a sandboxed state, runs the script at path and wraps it.
func LoadLua(path string, opts ...lua.StateOption) (*Lua, error) {
	state := lua.NewState(opts...)
	if err := state.DoFile(path); err != nil {
		state.Close()
		return nil, fmt.Errorf("lua transform %s: %w", path, err)
	}
	l, err := NewLua(state)
	if err != nil {
		state.Close()
		return nil, err
	}
	return l, nil
}

// Transform implements Transform.
func (l *Lua) Transform(text string) (*markup.Tree, error) {
	return l.line.Transform(text)
}

// Close releases the script's state.
func (l *Lua) Close() {
	l.state.Close()
}

func (l *Lua) segments(line string) ([]Segment, error) {
	results, err := l.state.Call(LuaFunction, glua.LString(line))
	if err != nil {
		return nil, fmt.Errorf("lua transform: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("lua transform: %w: no result", ErrInvalidSegment)
	}

	switch v := results[0].(type) {
	case glua.LString:
		return []Segment{{Text: string(v)}}, nil
	case *glua.LTable:
		return tableSegments(v)
	default:
		return nil, fmt.Errorf("lua transform: %w: result is %s", ErrInvalidSegment, results[0].Type())
	}
}

func tableSegments(tbl *glua.LTable) ([]Segment, error) {
	n := tbl.Len()
	segs := make([]Segment, 0, n)
	for i := 1; i <= n; i++ {
		switch v := tbl.RawGetInt(i).(type) {
		case glua.LString:
			segs = append(segs, Segment{Text: string(v)})
		case *glua.LTable:
			text, ok := v.RawGetString("text").(glua.LString)
			if !ok {
				return nil, fmt.Errorf("lua transform: %w: segment %d has no text", ErrInvalidSegment, i)
			}
			seg := Segment{Text: string(text)}
			if class, ok := v.RawGetString("class").(glua.LString); ok {
				seg.Class = string(class)
			}
			segs = append(segs, seg)
		default:
			return nil, fmt.Errorf("lua transform: %w: segment %d is %s", ErrInvalidSegment, i, v.Type())
		}
	}
	return segs, nil
}
