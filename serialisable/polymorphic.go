package serialisable

// PolymorphicRegistry maps a discriminator tag to a constructor for one
// variant of a sum type, so that a field can be decoded as one of several
// concrete Describer implementations chosen at runtime. Unlike a global
// factory, a registry is an explicit value a caller constructs and passes
// to Decode; nothing is looked up through package-level state.
type PolymorphicRegistry[T Describer] struct {
	ctors map[string]func() T
	// DiscriminatorKey is the object field Decode reads to choose a
	// constructor. Defaults to "type" when left empty.
	DiscriminatorKey string
}

// NewPolymorphicRegistry returns an empty registry.
func NewPolymorphicRegistry[T Describer]() *PolymorphicRegistry[T] {
	return &PolymorphicRegistry[T]{ctors: map[string]func() T{}}
}

// Register binds tag to ctor. Registering the same tag twice overwrites
// the previous binding.
func (r *PolymorphicRegistry[T]) Register(tag string, ctor func() T) {
	r.ctors[tag] = ctor
}

// Decode reads the discriminator field from v, constructs the matching
// variant, and loads the rest of v into it via Load.
func (r *PolymorphicRegistry[T]) Decode(v Value) (T, error) {
	var zero T
	key := r.DiscriminatorKey
	if key == "" {
		key = "type"
	}
	tagVal, err := v.Get(key)
	if err != nil {
		return zero, &MissingKey{Key: key}
	}
	tag, err := tagVal.AsString()
	if err != nil {
		return zero, err
	}
	ctor, ok := r.ctors[tag]
	if !ok {
		return zero, &Corrupt{Message: "unregistered polymorphic tag " + tag}
	}
	made := ctor()
	if err := Load(v, made); err != nil {
		return zero, err
	}
	return made, nil
}

// Encode saves value and stamps the discriminator field with tag.
func (r *PolymorphicRegistry[T]) Encode(tag string, value T) (Value, error) {
	key := r.DiscriminatorKey
	if key == "" {
		key = "type"
	}
	saved := Save(value)
	return saved.Set(key, Str(tag))
}
