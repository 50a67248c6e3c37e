// Package fetch downloads form exports from the remote form service.
//
// The service has no API for exports. Client logs in with the admin
// credentials, keeps the session cookie in a jar and downloads the CSV
// export of a form. Every Export call starts a new session; nothing is
// shared between report computations.
//
// Failures are returned as *model.RemoteFetchError. Network errors and 5xx
// responses wrap model.ErrRemoteUnavailable and are retried with the
// configured backoff. Rejected logins wrap model.ErrAuthentication and are
// returned at once.
package fetch
