// Package services wires the screend service graph: the pattern library,
// the external reasoning client, the similarity suggester, and the
// screening service, assembled once at startup and handed to the transport
// layer through the Registry interface.
package services
