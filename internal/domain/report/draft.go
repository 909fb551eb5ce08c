package report

// Draft is a report a user has started but not yet submitted.
type Draft struct {
	Category   string
	ObjectCode *string // nil until the user sends the object code
}

// HasObjectCode reports whether the draft is ready to be submitted.
func (d Draft) HasObjectCode() bool {
	return d.ObjectCode != nil
}
