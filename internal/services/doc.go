// Package services holds the cross-cutting helpers shared by the insight
// providers and supporting stores: context annotation (request correlation
// IDs, component names, node paths) and the sentinel error taxonomy used to
// classify failures in logs.
package services
