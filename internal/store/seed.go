package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var samplePeople = []Person{
	{Name: "Alice Hart", Age: 34, City: "Portland"},
	{Name: "Ben Okafor", Age: 28, City: "Austin"},
	{Name: "Carla Mendes", Age: 41, City: "Lisbon"},
	{Name: "Daniel Kim", Age: 23, City: "Seoul"},
	{Name: "Emi Tanaka", Age: 37, City: "Osaka"},
	{Name: "Farid Nassar", Age: 52, City: "Cairo"},
	{Name: "Grace Liu", Age: 30, City: "Vancouver"},
	{Name: "Hugo Brandt", Age: 45, City: "Hamburg"},
	{Name: "Ines Castro", Age: 26, City: "Lisbon"},
	{Name: "Jonas Berg", Age: 58, City: "Oslo"},
	{Name: "Kavya Rao", Age: 33, City: "Bengaluru"},
	{Name: "Liam Doyle", Age: 29, City: "Dublin"},
	{Name: "Mina Aziz", Age: 38, City: "Cairo"},
	{Name: "Noah Fischer", Age: 24, City: "Hamburg"},
	{Name: "Olga Petrova", Age: 47, City: "Riga"},
	{Name: "Pedro Alves", Age: 31, City: "Lisbon"},
	{Name: "Quinn Harper", Age: 36, City: "Austin"},
	{Name: "Rosa Delgado", Age: 43, City: "Valencia"},
	{Name: "Sam Whitfield", Age: 27, City: "Portland"},
	{Name: "Tomas Novak", Age: 50, City: "Prague"},
	{Name: "Uma Patel", Age: 22, City: "Bengaluru"},
	{Name: "Viktor Larsen", Age: 39, City: "Oslo"},
	{Name: "Wren Calloway", Age: 32, City: "Austin"},
	{Name: "Yuki Mori", Age: 25, City: "Osaka"},
	{Name: "Zofia Kowalska", Age: 44, City: "Warsaw"},
}

// Seed inserts the sample dataset if the people table is empty. It is
// idempotent so serve can call it on every start.
func (s *Store) Seed(ctx context.Context) error {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM people").Scan(&count); err != nil {
		return fmt.Errorf("check seed state: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO people (id, name, age, city, email) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare seed insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, p := range samplePeople {
		id := uuid.NewString()
		if _, err := stmt.ExecContext(ctx, id, p.Name, p.Age, p.City, emailFor(p.Name)); err != nil {
			return fmt.Errorf("seed %q: %w", p.Name, err)
		}
	}

	return tx.Commit()
}

func emailFor(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", ".") + "@example.com"
}
