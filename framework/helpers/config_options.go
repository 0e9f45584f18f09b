package helpers

// ConfigOption is the interface behind the vararg option lists that component
// constructors accept, such as vendorclient's FetcherOption. Each option makes
// one configuration change to the value under construction.
type ConfigOption[T any] interface {
	Configure(*T) error
}

// ApplyOptions runs each option against the target, stopping at the first error.
// The U type parameter duck-types the interface so callers can declare their own
// named option type and still pass a slice of it here.
func ApplyOptions[T any, U ConfigOption[T]](target *T, options ...U) error {
	for _, o := range options {
		if err := o.Configure(target); err != nil {
			return err
		}
	}
	return nil
}
