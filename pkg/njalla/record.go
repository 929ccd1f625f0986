package njalla

import (
	"context"
	"encoding/json"
	"fmt"
)

const (
	MethodListRecords  = "list-records"
	MethodAddRecord    = "add-record"
	MethodEditRecord   = "edit-record"
	MethodRemoveRecord = "remove-record"
)

// Record is a DNS record of a domain.
type Record struct {
	ID       string  `json:"id,omitempty"`
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Content  string  `json:"content"`
	TTL      uint32  `json:"ttl"`
	Priority *uint32 `json:"prio,omitempty"`
}

func (r *Record) UnmarshalJSON(data []byte) error {
	if err := requireMembers(data, "name", "type", "content", "ttl"); err != nil {
		return fmt.Errorf("record: %w", err)
	}
	type plain Record
	return json.Unmarshal(data, (*plain)(r))
}

// NewRecord is the payload of add-record.
type NewRecord struct {
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Content  string  `json:"content"`
	TTL      uint32  `json:"ttl"`
	Priority *uint32 `json:"prio,omitempty"`
}

// RecordPatch holds the fields of a record to change. Nil fields keep the
// value of the existing record.
type RecordPatch struct {
	Name     *string
	Type     *string
	Content  *string
	TTL      *uint32
	Priority *uint32
}

// Apply returns r with every non-nil field of p overriding it.
func (p RecordPatch) Apply(r Record) Record {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Type != nil {
		r.Type = *p.Type
	}
	if p.Content != nil {
		r.Content = *p.Content
	}
	if p.TTL != nil {
		r.TTL = *p.TTL
	}
	if p.Priority != nil {
		r.Priority = p.Priority
	}
	return r
}

type recordsResponse struct {
	Records []Record `json:"records"`
}

func (r *recordsResponse) UnmarshalJSON(data []byte) error {
	if err := requireMembers(data, "records"); err != nil {
		return err
	}
	type plain recordsResponse
	return json.Unmarshal(data, (*plain)(r))
}

// ListRecords lists all DNS records of domain.
func (c *Client) ListRecords(ctx context.Context, domain string) ([]Record, error) {
	resp, err := call[recordsResponse](ctx, c, MethodListRecords, params{"domain": domain})
	if err != nil {
		return nil, err
	}
	return resp.Records, nil
}

// AddRecord adds a DNS record to domain and returns it with its id.
func (c *Client) AddRecord(ctx context.Context, domain string, record NewRecord) (*Record, error) {
	p, err := withDomain(MethodAddRecord, record, domain)
	if err != nil {
		return nil, err
	}
	resp, err := call[Record](ctx, c, MethodAddRecord, p)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// EditRecord replaces a DNS record. The API requires every field, so
// record must be complete and carry its id.
func (c *Client) EditRecord(ctx context.Context, domain string, record Record) error {
	p, err := withDomain(MethodEditRecord, record, domain)
	if err != nil {
		return err
	}
	return callVoid(ctx, c, MethodEditRecord, p)
}

// EditRecordByID fetches the records of domain, applies patch to the record
// with the given id and sends the complete result with edit-record.
// It returns an error wrapping ErrNotFound, without editing anything, when
// no such record exists. An empty id never matches and issues no call.
func (c *Client) EditRecordByID(ctx context.Context, domain, id string, patch RecordPatch) (*Record, error) {
	if id == "" {
		return nil, fmt.Errorf("record with empty id in %s: %w", domain, ErrNotFound)
	}

	records, err := c.ListRecords(ctx, domain)
	if err != nil {
		return nil, err
	}

	var existing *Record
	for i := range records {
		if records[i].ID == id {
			existing = &records[i]
			break
		}
	}
	if existing == nil {
		return nil, fmt.Errorf("record %s in %s: %w", id, domain, ErrNotFound)
	}

	patched := patch.Apply(*existing)
	patched.ID = id
	if err := c.EditRecord(ctx, domain, patched); err != nil {
		return nil, err
	}
	return &patched, nil
}

// RemoveRecord removes the record with the given id from domain.
func (c *Client) RemoveRecord(ctx context.Context, domain, id string) error {
	return callVoid(ctx, c, MethodRemoveRecord, params{"domain": domain, "id": id})
}

// withDomain serializes payload to a JSON object and sets its "domain" member.
func withDomain(method string, payload any, domain string) (params, error) {
	p, err := toParams(payload)
	if err != nil {
		return nil, &DecodeError{Method: method, Err: fmt.Errorf("failed to encode params: %w", err)}
	}
	p["domain"] = domain
	return p, nil
}

func toParams(payload any) (params, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	p := params{}
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, err
	}
	return p, nil
}
