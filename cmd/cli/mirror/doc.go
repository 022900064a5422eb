// Package mirror assembles the fetch and metric Cobra commands around the
// repository mirroring service.
package mirror
