// Package types defines the CurbLR entity types, the activation query, the
// resolver output types, configuration, and the standard errors shared by the
// curbmap engine, its CLI, and its HTTP service.
//
// Wire names follow the CurbLR GeoJSON profile (shstRefId, sideOfStreet,
// shstLocationStart, shstLocationEnd, regulations[].priority, rule.activity,
// timeSpans[].daysOfWeek.days, timeSpans[].timesOfDay). Fields the engine does
// not interpret are kept and written back unchanged.
package types
