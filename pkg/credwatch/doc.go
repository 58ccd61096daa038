// Package credwatch rotates RIS API keys without restarting.
//
// Long-lived services embedding the RIS client typically mount the API
// key from a secret manager that rewrites the file on rotation. Watcher
// monitors the key file and hands every new trimmed key to a callback,
// which usually swaps the client's transport via Client.SetTransport.
package credwatch
