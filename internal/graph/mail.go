package graph

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"graphbox/pkg/interfaces"
)

const (
	defaultMessageLimit = 25
	maxMessagePageSize  = 100
)

// ListInbox returns inbox messages, newest first, optionally bounded to
// those received at or after since. Pagination is followed until limit
// messages are collected or the mailbox is exhausted.
func (c *Client) ListInbox(ctx context.Context, since time.Time, limit int) ([]Message, error) {
	if limit <= 0 {
		limit = defaultMessageLimit
	}

	query := map[string]string{
		"$select":  "id,subject,from,receivedDateTime,bodyPreview,isRead",
		"$orderby": "receivedDateTime desc",
		"$top":     strconv.Itoa(min(limit, maxMessagePageSize)),
	}

	if !since.IsZero() {
		query["$filter"] = fmt.Sprintf("receivedDateTime ge %s", since.UTC().Format(time.RFC3339))
	}

	next := "/me/mailFolders/inbox/messages"

	var messages []Message

	for next != "" && len(messages) < limit {
		var page messageList
		if err := c.getJSON(ctx, next, query, &page); err != nil {
			return nil, fmt.Errorf("unable to list inbox: %w", err)
		}

		messages = append(messages, page.Value...)

		// nextLink already carries the query.
		query = nil
		next = page.NextLink
	}

	if len(messages) > limit {
		messages = messages[:limit]
	}

	return messages, nil
}

// SendMail sends a plain-text message from the signed-in user to the given
// addresses, saving a copy to Sent Items.
func (c *Client) SendMail(ctx context.Context, to []string, subject, body string) error {
	if len(to) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}

	msg := Message{
		Subject: subject,
		Body:    &ItemBody{ContentType: "Text", Content: body},
	}

	for _, addr := range to {
		msg.ToRecipients = append(msg.ToRecipients, Recipient{EmailAddress: EmailAddress{Address: addr}})
	}

	if err := c.postJSON(ctx, "/me/sendMail", sendMailRequest{Message: msg, SaveToSentItems: true}, nil); err != nil {
		return fmt.Errorf("unable to send mail: %w", err)
	}

	return nil
}

var _ interfaces.Mailer = (*Client)(nil)
