package njalla

import (
	"context"
	"encoding/json"
	"fmt"
)

const (
	MethodListDomains    = "list-domains"
	MethodGetDomain      = "get-domain"
	MethodFindDomains    = "find-domains"
	MethodCheckTask      = "check-task"
	MethodRegisterDomain = "register-domain"
)

// Domain is a domain registered on the account.
type Domain struct {
	Name           string `json:"name"`
	Status         string `json:"status"`
	Expiry         string `json:"expiry"`
	Locked         *bool  `json:"locked,omitempty"`
	MailForwarding *bool  `json:"mailforwarding,omitempty"`
	MaxNameservers *int64 `json:"max_nameservers,omitempty"`
}

// MarketDomain is a search result from find-domains.
type MarketDomain struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Price  int64  `json:"price"`
}

func (d *Domain) UnmarshalJSON(data []byte) error {
	if err := requireMembers(data, "name", "status", "expiry"); err != nil {
		return fmt.Errorf("domain: %w", err)
	}
	type plain Domain
	return json.Unmarshal(data, (*plain)(d))
}

func (d *MarketDomain) UnmarshalJSON(data []byte) error {
	if err := requireMembers(data, "name", "status", "price"); err != nil {
		return fmt.Errorf("market domain: %w", err)
	}
	type plain MarketDomain
	return json.Unmarshal(data, (*plain)(d))
}

type domainsResponse struct {
	Domains []Domain `json:"domains"`
}

func (r *domainsResponse) UnmarshalJSON(data []byte) error {
	if err := requireMembers(data, "domains"); err != nil {
		return err
	}
	type plain domainsResponse
	return json.Unmarshal(data, (*plain)(r))
}

type marketDomainsResponse struct {
	Domains []MarketDomain `json:"domains"`
}

func (r *marketDomainsResponse) UnmarshalJSON(data []byte) error {
	if err := requireMembers(data, "domains"); err != nil {
		return err
	}
	type plain marketDomainsResponse
	return json.Unmarshal(data, (*plain)(r))
}

type taskResponse struct {
	Task string `json:"task"`
}

func (r *taskResponse) UnmarshalJSON(data []byte) error {
	if err := requireMembers(data, "task"); err != nil {
		return err
	}
	type plain taskResponse
	return json.Unmarshal(data, (*plain)(r))
}

type taskStatusResponse struct {
	Status string `json:"status"`
}

func (r *taskStatusResponse) UnmarshalJSON(data []byte) error {
	if err := requireMembers(data, "status"); err != nil {
		return err
	}
	type plain taskStatusResponse
	return json.Unmarshal(data, (*plain)(r))
}

// ListDomains lists all domains on the account.
func (c *Client) ListDomains(ctx context.Context) ([]Domain, error) {
	resp, err := call[domainsResponse](ctx, c, MethodListDomains, params{})
	if err != nil {
		return nil, err
	}
	return resp.Domains, nil
}

// GetDomain returns details for a single domain.
func (c *Client) GetDomain(ctx context.Context, domain string) (*Domain, error) {
	resp, err := call[Domain](ctx, c, MethodGetDomain, params{"domain": domain})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// FindDomains searches for available domains matching query.
func (c *Client) FindDomains(ctx context.Context, query string) ([]MarketDomain, error) {
	resp, err := call[marketDomainsResponse](ctx, c, MethodFindDomains, params{"query": query})
	if err != nil {
		return nil, err
	}
	return resp.Domains, nil
}

// CheckTask returns the status of an asynchronous task such as a domain
// registration.
func (c *Client) CheckTask(ctx context.Context, id string) (string, error) {
	resp, err := call[taskStatusResponse](ctx, c, MethodCheckTask, params{"id": id})
	if err != nil {
		return "", err
	}
	return resp.Status, nil
}

// RegisterDomain starts registration of domain for the given number of years
// and returns the task id to poll with CheckTask.
func (c *Client) RegisterDomain(ctx context.Context, domain string, years int) (string, error) {
	resp, err := call[taskResponse](ctx, c, MethodRegisterDomain, params{"domain": domain, "years": years})
	if err != nil {
		return "", err
	}
	return resp.Task, nil
}
