// Package mapping persists the application → UI port mapping.
//
// The mapping is a flat YAML document stored at <data-root>/port_mapping.yml:
//
//	app-one: 51423
//	app-two: 51800
//
// Typical use:
//
//	m, err := mapping.Load(dataRoot)
//	if err != nil { /* handle */ }
//	p, ok := m.PortForApp("editor")
//	if !ok {
//	    p, err = m.AssignPort("editor")
//	}
//
// Every operation is synchronous. Failures are *model.MappingError values
// whose kind (model.ErrIO, model.ErrMalformedData, model.ErrSerialization,
// model.ErrNoPortsAvailable) can be tested with errors.Is.
package mapping
