// Package molfile provides import and export of molecular graphs.
//
// # Formats
//
// Three formats are supported:
//
//   - JSON: the canonical round-trip format. Preserves atom IDs, elements,
//     positions and bond orders exactly.
//   - XYZ: plain coordinate lists. Carries no bond information and no atom
//     identities; import generates fresh IDs and export writes element plus
//     position per line.
//   - SDF: MDL MOL V2000 connection tables, including multi-record SD files.
//     Carries atoms, positions and bond orders; atom IDs are synthesized
//     from the 1-based atom index.
//
// # Graceful degradation
//
// Importers never hard-fail on recoverable data problems: SDF and JSON bonds
// referencing unknown atoms are skipped, because a missing constraint
// degrades the layout, while an aborted import loses the molecule. Structural
// problems (truncated counts line, unparseable coordinates) are errors.
//
// # JSON format
//
//	{
//	  "name": "water",
//	  "atoms": [
//	    {"id": "o1", "element": "O", "x": 0, "y": 0, "z": 0},
//	    {"id": "h1", "element": "H", "x": 3, "y": 0, "z": 0}
//	  ],
//	  "bonds": [
//	    {"from": "o1", "to": "h1", "order": 1}
//	  ]
//	}
package molfile
