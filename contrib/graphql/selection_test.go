package graphql_test

import (
	"context"
	"testing"

	gql "github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/syssam/fetchgraph/contrib/graphql"
	"github.com/syssam/fetchgraph/mapping"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func zooModel(t *testing.T) *mapping.Model {
	t.Helper()
	m := mapping.NewModel()

	employee, err := m.AddEntity("Employee")
	require.NoError(t, err)
	animal, err := m.AddEntity("Animal")
	require.NoError(t, err)
	dog, err := m.AddSubtype("Dog", animal)
	require.NoError(t, err)
	cat, err := m.AddSubtype("Cat", animal)
	require.NoError(t, err)

	_, err = employee.AddBasic("name")
	require.NoError(t, err)
	_, err = employee.AddCollection("pets", animal)
	require.NoError(t, err)
	_, err = animal.AddBasic("name")
	require.NoError(t, err)
	_, err = dog.AddBasic("breed")
	require.NoError(t, err)
	_, err = cat.AddBasic("indoor")
	require.NoError(t, err)

	return m
}

func TestFromQuery(t *testing.T) {
	t.Parallel()

	m := zooModel(t)
	employee, err := m.Entity("Employee")
	require.NoError(t, err)

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{
			name:  "plain fields",
			query: `{ name pets { name } }`,
			want:  "name, pets(name)",
		},
		{
			name:  "typename skipped",
			query: `{ __typename name pets { __typename name } }`,
			want:  "name, pets(name)",
		},
		{
			name:  "subtype inline fragment",
			query: `{ name pets { name ... on Dog { breed } } }`,
			want:  "name, pets(name), pets:Dog(breed)",
		},
		{
			name:  "coexisting narrowed fragments",
			query: `{ pets { ... on Dog { breed } ... on Cat { indoor } } }`,
			want:  "pets:Dog(breed), pets:Cat(indoor)",
		},
		{
			name:  "same-type condition flattens",
			query: `{ pets { ... on Animal { name } } }`,
			want:  "pets(name)",
		},
		{
			name:  "bare inline fragment flattens",
			query: `{ ... { name } }`,
			want:  "name",
		},
		{
			name:  "fragment spread",
			query: `{ pets { ...dogFields } } fragment dogFields on Dog { breed }`,
			want:  "pets:Dog(breed)",
		},
		{
			name:  "duplicate selections merge",
			query: `{ name name pets { name } pets { name } }`,
			want:  "name, pets(name)",
		},
		{
			name:  "named operation",
			query: `query Pets { pets { name } }`,
			want:  "pets(name)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := graphql.FromQuery(employee, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, g.String())
		})
	}
}

func TestFromQueryErrors(t *testing.T) {
	t.Parallel()

	m := zooModel(t)
	employee, err := m.Entity("Employee")
	require.NoError(t, err)

	tests := []struct {
		name    string
		query   string
		wantErr error
	}{
		{
			name:    "syntax error",
			query:   `{ name`,
			wantErr: graphql.ErrInvalidSelection,
		},
		{
			name:    "unknown attribute",
			query:   `{ salary }`,
			wantErr: mapping.ErrUnresolvedPath,
		},
		{
			name:    "unknown attribute in subgraph",
			query:   `{ pets { wings } }`,
			wantErr: mapping.ErrUnresolvedPath,
		},
		{
			name:    "non-subtype condition",
			query:   `{ pets { ... on Employee { name } } }`,
			wantErr: mapping.ErrUnresolvedPath,
		},
		{
			name:    "subtype condition on operation root",
			query:   `{ ... on Dog { breed } }`,
			wantErr: graphql.ErrInvalidSelection,
		},
		{
			name:    "undefined fragment",
			query:   `{ pets { ...missing } }`,
			wantErr: graphql.ErrInvalidSelection,
		},
		{
			name:    "fragment cycle",
			query:   `{ pets { ...a } } fragment a on Dog { ...b } fragment b on Dog { ...a }`,
			wantErr: graphql.ErrInvalidSelection,
		},
		{
			name:    "multiple operations",
			query:   `query A { name } query B { name }`,
			wantErr: graphql.ErrInvalidSelection,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := graphql.FromQuery(employee, tt.query)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFromQueryOperation(t *testing.T) {
	t.Parallel()

	m := zooModel(t)
	employee, err := m.Entity("Employee")
	require.NoError(t, err)

	query := `query Names { name } query Pets { pets { name } }`
	g, err := graphql.FromQueryOperation(employee, query, "Pets")
	require.NoError(t, err)
	assert.Equal(t, "pets(name)", g.String())

	_, err = graphql.FromQueryOperation(employee, query, "Owners")
	assert.ErrorIs(t, err, graphql.ErrInvalidSelection)
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	m := zooModel(t)
	employee, err := m.Entity("Employee")
	require.NoError(t, err)

	doc, err := parser.ParseQuery(&ast.Source{Input: `
		{ employee { name pets { name ...dogFields } } }
		fragment dogFields on Dog { breed }
	`})
	require.NoError(t, err)
	field := doc.Operations[0].SelectionSet[0].(*ast.Field)

	ctx := gql.WithOperationContext(context.Background(), &gql.OperationContext{Doc: doc})
	ctx = gql.WithFieldContext(ctx, &gql.FieldContext{
		Field: gql.CollectedField{Field: field, Selections: field.SelectionSet},
	})

	g, err := graphql.FromContext(ctx, employee)
	require.NoError(t, err)
	assert.Equal(t, "name, pets(name), pets:Dog(breed)", g.String())
}

func TestFromContextMissingContext(t *testing.T) {
	t.Parallel()

	m := zooModel(t)
	employee, err := m.Entity("Employee")
	require.NoError(t, err)

	_, err = graphql.FromContext(context.Background(), employee)
	assert.ErrorIs(t, err, graphql.ErrInvalidSelection)
}
