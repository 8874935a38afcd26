package render

// Optional - результат извлечения поля: значение либо его отсутствие.
type Optional[T any] struct {
	value T
	ok    bool
}

func Present[T any](v T) Optional[T] { return Optional[T]{value: v, ok: true} }

func Absent[T any]() Optional[T] { return Optional[T]{} }

// Get возвращает значение и признак его наличия.
func (o Optional[T]) Get() (T, bool) { return o.value, o.ok }

func (o Optional[T]) IsPresent() bool { return o.ok }

// Group возвращает вложенную группу документа. Отсутствующая группа или группа,
// которая не является объектом, считается отсутствующей.
func Group(doc any, name string) Optional[map[string]any] {
	root, ok := doc.(map[string]any)
	if !ok {
		return Absent[map[string]any]()
	}
	group, ok := root[name].(map[string]any)
	if !ok {
		return Absent[map[string]any]()
	}
	return Present(group)
}

// Number читает числовое поле группы. Значения других типов считаются отсутствующими.
func Number(group Optional[map[string]any], field string) Optional[float64] {
	g, ok := group.Get()
	if !ok {
		return Absent[float64]()
	}
	switch v := g[field].(type) {
	case float64:
		return Present(v)
	case float32:
		return Present(float64(v))
	case int:
		return Present(float64(v))
	case int64:
		return Present(float64(v))
	default:
		return Absent[float64]()
	}
}

// Text читает строковое поле группы. Значения других типов считаются отсутствующими.
func Text(group Optional[map[string]any], field string) Optional[string] {
	g, ok := group.Get()
	if !ok {
		return Absent[string]()
	}
	v, ok := g[field].(string)
	if !ok {
		return Absent[string]()
	}
	return Present(v)
}
