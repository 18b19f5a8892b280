package input

// Binding groups the subscriptions one owner makes so they can be released
// together. Every On must be matched by the single Close.
type Binding struct {
	router *Router
	subs   []*Subscription
}

func NewBinding(r *Router) *Binding {
	return &Binding{router: r}
}

// On subscribes h to sig and returns the binding for chaining.
func (b *Binding) On(sig Signal, h Handler) *Binding {
	if b == nil {
		return b
	}
	b.subs = append(b.subs, b.router.Subscribe(sig, h))
	return b
}

// Len is the number of subscriptions still held.
func (b *Binding) Len() int {
	if b == nil {
		return 0
	}
	return len(b.subs)
}

// Close releases every subscription. It is idempotent.
func (b *Binding) Close() {
	if b == nil {
		return
	}
	for _, sub := range b.subs {
		sub.Unsubscribe()
	}
	b.subs = nil
}
