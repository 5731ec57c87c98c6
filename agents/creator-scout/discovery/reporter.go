package discovery

// Reporter receives the final outcome of one discovery invocation. It is a
// pure delivery boundary; the controller never inspects what the reporter
// does with the outcome.
type Reporter interface {
	Deliver(out Outcome)
}

// ReporterFunc adapts a plain function to the Reporter interface.
type ReporterFunc func(Outcome)

func (f ReporterFunc) Deliver(out Outcome) {
	f(out)
}
