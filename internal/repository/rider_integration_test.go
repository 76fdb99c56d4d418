//go:build integration

package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"profast-parcel-service/internal/apperr"
	"profast-parcel-service/internal/domain"
	"profast-parcel-service/internal/repository"
)

type RiderRepositorySuite struct {
	suite.Suite
	riderRepo    *repository.RiderRepo
	localityRepo *repository.LocalityRepo
}

func (s *RiderRepositorySuite) SetupSuite() {
	s.riderRepo = repository.NewRiderRepo(tcPool)
	s.localityRepo = repository.NewLocalityRepo(tcPool)
}

func (s *RiderRepositorySuite) SetupTest() {
	ctx := context.Background()
	_, err := tcPool.Exec(ctx, `TRUNCATE riders RESTART IDENTITY CASCADE`)
	s.Require().NoError(err)
	_, err = tcPool.Exec(ctx, `TRUNCATE localities RESTART IDENTITY CASCADE`)
	s.Require().NoError(err)
}

func (s *RiderRepositorySuite) create(name, email, region, district string, status domain.RiderStatus) int64 {
	id, err := s.riderRepo.Create(context.Background(), &domain.Rider{
		Name:     name,
		Email:    email,
		Contact:  "0171000000",
		Locality: domain.Locality{Region: region, District: district},
		Status:   status,
	})
	s.Require().NoError(err)
	return id
}

func (s *RiderRepositorySuite) TestCreateGetAndDuplicateEmail() {
	ctx := context.Background()

	id := s.create("Karim", "karim@example.com", "dhaka", "uttara", domain.RiderPending)

	got, err := s.riderRepo.Get(ctx, id)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal("Karim", got.Name)
	s.Equal(domain.RiderPending, got.Status)
	s.Equal(domain.Locality{Region: "dhaka", District: "uttara"}, got.Locality)

	_, err = s.riderRepo.Create(ctx, &domain.Rider{
		Name:     "Other",
		Email:    "karim@example.com",
		Contact:  "0171000001",
		Locality: domain.Locality{Region: "dhaka", District: "mirpur"},
		Status:   domain.RiderPending,
	})
	s.Require().ErrorIs(err, apperr.Conflict)

	missing, err := s.riderRepo.Get(ctx, 999999)
	s.Require().NoError(err)
	s.Nil(missing)
}

func (s *RiderRepositorySuite) TestListActiveFilters() {
	ctx := context.Background()

	s.create("A", "a@example.com", "dhaka", "uttara", domain.RiderActive)
	s.create("B", "b@example.com", "dhaka", "mirpur", domain.RiderActive)
	s.create("C", "c@example.com", "dhaka", "uttara", domain.RiderPending)
	s.create("D", "d@example.com", "chittagong", "pahartali", domain.RiderActive)

	byRegion, err := s.riderRepo.ListActiveByRegion(ctx, "dhaka")
	s.Require().NoError(err)
	s.Require().Len(byRegion, 2)
	s.Equal("A", byRegion[0].Name)
	s.Equal("B", byRegion[1].Name)

	byDistrict, err := s.riderRepo.ListActiveByDistrict(ctx, "uttara")
	s.Require().NoError(err)
	s.Require().Len(byDistrict, 1)
	s.Equal("A", byDistrict[0].Name)
}

func (s *RiderRepositorySuite) TestList_Pagination() {
	ctx := context.Background()

	s.create("A", "a@example.com", "dhaka", "uttara", domain.RiderActive)
	s.create("B", "b@example.com", "dhaka", "mirpur", domain.RiderActive)
	s.create("C", "c@example.com", "dhaka", "badda", domain.RiderActive)

	limit, offset := 2, 1
	got, err := s.riderRepo.List(ctx, &limit, &offset)
	s.Require().NoError(err)
	s.Require().Len(got, 2)
	s.Equal("B", got[0].Name)
	s.Equal("C", got[1].Name)

	all, err := s.riderRepo.List(ctx, nil, nil)
	s.Require().NoError(err)
	s.Len(all, 3)
}

func (s *RiderRepositorySuite) TestUpdatePartial() {
	ctx := context.Background()

	id := s.create("Karim", "karim@example.com", "dhaka", "uttara", domain.RiderPending)

	status := domain.RiderActive
	warehouse := "uttara hub"
	ok, err := s.riderRepo.UpdatePartial(ctx, domain.PartialRiderUpdate{
		ID:        id,
		Status:    &status,
		Warehouse: &warehouse,
	})
	s.Require().NoError(err)
	s.True(ok)

	got, err := s.riderRepo.Get(ctx, id)
	s.Require().NoError(err)
	s.Equal(domain.RiderActive, got.Status)
	s.Equal("uttara hub", got.Warehouse)
	s.Equal("Karim", got.Name)

	ok, err = s.riderRepo.UpdatePartial(ctx, domain.PartialRiderUpdate{ID: 999999, Status: &status})
	s.Require().NoError(err)
	s.False(ok)
}

func (s *RiderRepositorySuite) TestLocalityReplaceAllAndListAll() {
	ctx := context.Background()

	table := domain.LocalityTable{
		{Region: "dhaka", District: "dhanmondi"},
		{Region: "dhaka", District: "uttara"},
		{Region: "chittagong", District: "pahartali"},
	}
	s.Require().NoError(s.localityRepo.ReplaceAll(ctx, table))

	got, err := s.localityRepo.ListAll(ctx)
	s.Require().NoError(err)
	s.Equal(table, got)

	// replacing again swaps, never appends
	next := domain.LocalityTable{{Region: "sylhet", District: "zindabazar"}}
	s.Require().NoError(s.localityRepo.ReplaceAll(ctx, next))

	got, err = s.localityRepo.ListAll(ctx)
	s.Require().NoError(err)
	s.Equal(next, got)
}

func TestRiderRepositorySuite(t *testing.T) {
	suite.Run(t, new(RiderRepositorySuite))
}
