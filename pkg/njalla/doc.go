// Package njalla is a client for the Njalla JSON-RPC API.
//
// Every operation is a single authenticated POST of a JSON-RPC 2.0 request
// to the API endpoint. Calls are never retried. Failures are reported as:
//
//   - *TransportError: the request failed, timed out, or got a non-2xx status
//   - *DecodeError: the response was not valid JSON or had an unexpected shape
//   - *APIError: the server returned an error object
//   - ErrMissingResult: the response had neither result nor error
//   - ErrNotFound: a client-side lookup (EditRecordByID) found nothing
//
// Usage:
//
//	client, err := njalla.New(token)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	domains, err := client.ListDomains(ctx)
package njalla
