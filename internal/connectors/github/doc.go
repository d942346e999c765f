// Package github implements the paginated-fetch protocol against the
// GitHub REST API.
//
// It comprises the following components:
//
//   - Client: authenticated HTTP access with a bounded request timeout,
//     plus a credential preflight via the go-github SDK
//   - Fetcher: streams listing endpoints page by page into a sink,
//     following Link-header "next" relations until exhausted
//   - Pacer: fixed-interval spacing between resource-kind calls, with
//     X-RateLimit-* header tracking
//   - ParseLink: the pagination Link header parser
//
// # Authentication
//
// Two methods are supported: HTTP Basic from a username/password pair,
// or a personal access token sent as a bearer token. Anonymous access
// works too, within GitHub's unauthenticated rate limits.
//
// # Error behaviour
//
// A 404 response is a successful empty result: the resource genuinely
// does not exist for that repository. Any other failure abandons the
// current fetch call after a short pause; the next scheduled cycle
// retries from scratch.
package github
