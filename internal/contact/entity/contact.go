package entity

// Submission is one contact-form entry as the visitor sent it.
type Submission struct {
	Name    string
	Email   string
	Message string
}

// Notification is the rendered email for a Submission.
type Notification struct {
	Subject  string
	HTMLBody string
}

// Outcome is the result of one dispatch attempt. It only selects the response and is never stored.
type Outcome struct {
	Delivered bool
	Err       error
}

func Delivered() Outcome { return Outcome{Delivered: true} }

func Failed(err error) Outcome { return Outcome{Err: err} }
