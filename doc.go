// Package fetchgraph describes which parts of an entity model to fetch.
//
// The library has three layers:
//
//   - mapping: the entity mapping model (entity types, basic attributes,
//     embedded groups, associations, collections) and a resolver for
//     dotted paths such as "department.manager.name".
//   - graph: mutable fetch graphs (root + subgraphs) over the model,
//     parseable from a compact text grammar and renderable back to it.
//   - querylanguage: a predicate tree whose field references resolve
//     through the mapping model.
//
// This package is the facade: Parse creates a fresh root graph for an
// entity type and parses graph text into it, ParseInto populates a
// caller-owned graph. For example:
//
//	emp, _ := model.Entity("Employee")
//	g, err := fetchgraph.Parse(emp, "username, department(name, employees(username))")
//
// The schema package loads models from YAML definitions, contrib/graphql
// derives graphs from GraphQL selection sets, and compiler/gen generates
// per-entity constant packages.
package fetchgraph
