// Package api is a typed client for the hydrus network client API.
//
// # Overview
//
// Every endpoint is declared once as an Endpoint value that binds a request
// type, a response type, an HTTP method and a path:
//
//	var SetTime = Endpoint[SetTimeRequest, Empty]{Method: http.MethodPost, Path: "edit_times/set_time"}
//
// Call is the only dispatch primitive. It serialises the request, hands it to
// a Transport and decodes the answer into the endpoint's response type.
// Adding an endpoint means declaring a new descriptor; Call never changes.
//
// # Transport
//
// Transport is the seam between request construction and HTTP. The
// HTTPTransport implementation sets the Hydrus-Client-API-Access-Key (or
// session key) header, applies a timeout, logs through zap and can record
// prometheus metrics. Tests use TransportFunc or an httptest server.
//
//	transport, err := api.NewHTTPTransport("127.0.0.1:45869", api.WithAccessKey(key))
//	client, err := api.NewClient(transport)
//
// # Wire encoding
//
// GET requests become query parameters. String fields are sent verbatim and
// all other fields as JSON text, which is how the client API reads list
// arguments such as tags=["blue eyes","solo"]. POST requests are sent as a
// JSON body, except for types implementing BodyEncoder (raw file uploads).
//
// # Setting file times
//
// edit_times/set_time accepts five request shapes sharing a hash list and an
// optional millisecond timestamp. The shape decides the timestamp_type
// discriminant:
//
//	WebDomainTime   0
//	DiskTime        1
//	DbTime          3 (imported), 4 (deleted), 7 (originally imported)
//	ArchivedTime    5
//	LastViewedTime  6
//
// Code 2 is not used by the client API. Requests are assembled with a
// SetTimeRequestBuilder and serialised as one flat object:
//
//	req, err := api.SetLastViewedTime(api.CanvasMediaViewer).
//		AddHash(hash).
//		SetTime(time.Now()).
//		Build()
//
// Builders are single-use; a second Build returns ErrBuilderConsumed.
//
// # Errors
//
// Failures are *Error values. errors.Is(err, ErrTransport) matches network
// failures and non-success statuses (Status and Body are kept);
// errors.Is(err, ErrDecode) matches answers that do not fit the declared
// response type. Nothing is retried.
package api
