package annotation

// Collector accumulates the annotations and status of one parser instance.
// Parsers embed it to satisfy the Annotations/Status half of their contract.
// The zero value is ready to use and starts at StatusSuccess.
type Collector struct {
	set    Set
	status Status
}

// Add records a finding.
func (c *Collector) Add(a Annotation) {
	if c.set.items == nil {
		c.set = NewSet()
	}
	c.set.Add(a)
}

// Raise folds s into the running status.
func (c *Collector) Raise(s Status) {
	c.status = Worst(c.status, s)
}

// Annotations returns everything collected so far.
func (c *Collector) Annotations() Set {
	if c.set.items == nil {
		c.set = NewSet()
	}
	return c.set
}

// Status returns the worst status raised so far.
func (c *Collector) Status() Status {
	return Worst(c.status)
}
