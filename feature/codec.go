package feature

// Codec projects observations onto a registry's ordering.
type Codec struct {
	reg *Registry
}

// NewCodec creates a codec over the given registry. A nil registry gets a
// fresh one.
func NewCodec(reg *Registry) *Codec {
	if reg == nil {
		reg = NewRegistry()
	}

	return &Codec{reg: reg}
}

// Registry returns the ordering the codec projects onto.
func (c *Codec) Registry() *Registry {
	return c.reg
}

// Project returns x as a dense vector over the full current ordering. Names
// never seen before are registered first, so the result always covers every
// name in x; registered names absent from x contribute zero.
func (c *Codec) Project(x Features) []float64 {
	c.reg.ObserveAll(x)

	vec := make([]float64, c.reg.Len())

	for name, v := range x {
		if i, ok := c.reg.Index(name); ok {
			vec[i] = v
		}
	}

	return vec
}
