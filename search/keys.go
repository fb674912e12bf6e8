// Copyright 2026 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package search

// Key is a key handled by [Session.Key].
type Key int

const (
	// KeyOther is any key the session does not handle.
	KeyOther Key = iota
	KeyDown
	KeyUp
	KeyEnter
	KeyEscape
)

var keyNames = map[string]Key{
	"ArrowDown": KeyDown,
	"ArrowUp":   KeyUp,
	"Enter":     KeyEnter,
	"Escape":    KeyEscape,

	// Terminal key names.
	"down":  KeyDown,
	"up":    KeyUp,
	"enter": KeyEnter,
	"esc":   KeyEscape,
}

// ParseKey returns the Key for a DOM or terminal key name. Unknown names
// return KeyOther.
func ParseKey(name string) Key {
	return keyNames[name]
}

func (k Key) String() string {
	switch k {
	case KeyDown:
		return "ArrowDown"
	case KeyUp:
		return "ArrowUp"
	case KeyEnter:
		return "Enter"
	case KeyEscape:
		return "Escape"
	default:
		return "Other"
	}
}
