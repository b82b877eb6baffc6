package access

// Intent distinguishes a read from a mutation when checking a single record.
type Intent int

const (
	IntentRead Intent = iota
	IntentMutate
)

// DenialMode is how a resource's usecases surface a denial. Resources that
// deny as not-found return nil/false with no error, indistinguishable from
// genuine absence at the transport boundary. Each resource declares its mode
// once, in its Policy.
type DenialMode int

const (
	DenyAsForbidden DenialMode = iota
	DenyAsNotFound
)
