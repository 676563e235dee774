// Package filters — переиспользуемое хранилище параметров списочных страниц
// поверх query string: одно поле — один ключ, массивы через запятую,
// отсутствие ключа означает значение по умолчанию.
package filters

import (
	"net/url"
	"strconv"
	"strings"
)

type Kind int

const (
	String Kind = iota
	Int
	Bool
	IntList
	StringList
)

const listDelimiter = ","

type Field struct {
	Key     string
	Kind    Kind
	Default interface{}
}

type Set struct {
	fields []Field
}

func NewSet(fields ...Field) *Set {
	return &Set{fields: fields}
}

// Defaults возвращает состояние, в котором все поля равны своим умолчаниям.
func (s *Set) Defaults() map[string]interface{} {
	state := make(map[string]interface{}, len(s.fields))
	for _, f := range s.fields {
		state[f.Key] = f.Default
	}
	return state
}

// Read разбирает каждое поле своим парсером. Отсутствующее, пустое или
// нечитаемое значение заменяется умолчанием.
func (s *Set) Read(q url.Values) map[string]interface{} {
	state := make(map[string]interface{}, len(s.fields))
	for _, f := range s.fields {
		raw := q.Get(f.Key)
		if raw == "" {
			state[f.Key] = f.Default
			continue
		}
		state[f.Key] = parseValue(f, raw)
	}
	return state
}

// Write применяет частичное состояние к форме: ключи со значением по
// умолчанию (или пустые) удаляются, остальные сериализуются канонично.
// Не затрагивает ключи, которых нет ни в partial, ни среди полей набора.
func (s *Set) Write(q url.Values, partial map[string]interface{}) url.Values {
	out := url.Values{}
	for k, vs := range q {
		out[k] = append([]string(nil), vs...)
	}
	for _, f := range s.fields {
		value, ok := partial[f.Key]
		if !ok {
			continue
		}
		if value == nil || equalValue(f.Kind, value, f.Default) || isEmpty(f.Kind, value) {
			out.Del(f.Key)
			continue
		}
		out.Set(f.Key, serializeValue(f.Kind, value))
	}
	return out
}

// Reset убирает все ключи набора из формы.
func (s *Set) Reset(q url.Values) url.Values {
	out := url.Values{}
	for k, vs := range q {
		out[k] = append([]string(nil), vs...)
	}
	for _, f := range s.fields {
		out.Del(f.Key)
	}
	return out
}

// HasActiveFilters — истина, если хоть одно поле отличается от умолчания.
func (s *Set) HasActiveFilters(state map[string]interface{}) bool {
	for _, f := range s.fields {
		value, ok := state[f.Key]
		if !ok {
			continue
		}
		if !equalValue(f.Kind, value, f.Default) {
			return true
		}
	}
	return false
}

func parseValue(f Field, raw string) interface{} {
	switch f.Kind {
	case Int:
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	case Bool:
		if v, err := strconv.ParseBool(raw); err == nil {
			return v
		}
	case IntList:
		parts := strings.Split(raw, listDelimiter)
		list := make([]int, 0, len(parts))
		for _, p := range parts {
			v, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil {
				return f.Default
			}
			list = append(list, v)
		}
		return list
	case StringList:
		parts := strings.Split(raw, listDelimiter)
		list := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				list = append(list, p)
			}
		}
		if len(list) == 0 {
			return f.Default
		}
		return list
	default:
		return raw
	}
	return f.Default
}

func serializeValue(kind Kind, value interface{}) string {
	switch kind {
	case Int:
		return strconv.Itoa(value.(int))
	case Bool:
		return strconv.FormatBool(value.(bool))
	case IntList:
		list := value.([]int)
		parts := make([]string, len(list))
		for i, v := range list {
			parts[i] = strconv.Itoa(v)
		}
		return strings.Join(parts, listDelimiter)
	case StringList:
		return strings.Join(value.([]string), listDelimiter)
	default:
		return value.(string)
	}
}

func equalValue(kind Kind, a, b interface{}) bool {
	switch kind {
	case IntList:
		al, aok := a.([]int)
		bl, bok := b.([]int)
		if !aok || !bok || len(al) != len(bl) {
			return aok == bok && len(al) == len(bl)
		}
		for i := range al {
			if al[i] != bl[i] {
				return false
			}
		}
		return true
	case StringList:
		al, aok := a.([]string)
		bl, bok := b.([]string)
		if !aok || !bok || len(al) != len(bl) {
			return aok == bok && len(al) == len(bl)
		}
		for i := range al {
			if al[i] != bl[i] {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

func isEmpty(kind Kind, value interface{}) bool {
	switch kind {
	case String:
		s, ok := value.(string)
		return ok && s == ""
	case IntList:
		l, ok := value.([]int)
		return ok && len(l) == 0
	case StringList:
		l, ok := value.([]string)
		return ok && len(l) == 0
	}
	return false
}
