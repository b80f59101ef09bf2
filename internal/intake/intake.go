// Package intake pulls supplier mail out of a mailbox and turns attachments
// into stored feeds ready for processing.
package intake

import "babette/internal"

type MailConnector interface {
	FetchInbox(label string, max int) ([]internal.FetchedMailMessage, error)
}
