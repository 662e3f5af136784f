package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/neonflick/goapi/base/ctx"
	"github.com/neonflick/goapi/domain"
	"github.com/neonflick/goapi/domain/listing"
	"github.com/neonflick/goapi/service/query"
	mockQuery "github.com/neonflick/goapi/service/query/mocks"
)

var (
	mockCtx = ctx.Background()

	owner  = domain.Address("wEcAGYdbSdzDR79BvijKdgHDPfFJT4gKEj8wptE16UL")
	txHash = domain.TxHash("3hizm34taS8t9UvpJg9oRCJ7EWYkuUHNCecrhuBZjG7L2RfqEqgApn2VsKS94Agj9UgBdgQT6HsaaFRUu7ZT44sU")
)

type listingSuite struct {
	suite.Suite
	q  *mockQuery.Mongo
	im listing.Repo
}

func (s *listingSuite) SetupTest() {
	s.q = mockQuery.NewMongo(s.T())
	s.im = New(s.q)
}

func TestListingSuite(t *testing.T) {
	suite.Run(t, new(listingSuite))
}

func d128(s string) primitive.Decimal128 {
	v, err := primitive.ParseDecimal128(s)
	if err != nil {
		panic(err)
	}
	return v
}

func sampleDoc() listingDoc {
	commission := d128("0.0025")
	return listingDoc{
		Id:           "a1",
		Owner:        owner,
		Title:        "poster",
		Price:        d128("1"),
		Commission:   &commission,
		NetAmount:    d128("0.9975"),
		Currency:     "SOL",
		ImageKey:     "listings/a1/img.png",
		Status:       listing.StatusNew,
		Transactions: []listing.Transaction{},
		ExpiresAt:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *listingSuite) TestGet() {
	s.q.On("FindOne", mockCtx, domain.TableListings, bson.M{"_id": "a1"}, mock.AnythingOfType("*repository.listingDoc")).
		Run(func(args mock.Arguments) {
			*args.Get(3).(*listingDoc) = sampleDoc()
		}).Return(nil).Once()

	res, err := s.im.Get(mockCtx, "a1")
	s.Require().NoError(err)
	s.Equal("a1", res.Id)
	s.True(decimal.NewFromInt(1).Equal(res.Price))
	s.True(decimal.RequireFromString("0.9975").Equal(res.NetAmount))
	s.Require().NotNil(res.Commission)
	s.True(decimal.RequireFromString("0.0025").Equal(*res.Commission))
	s.Equal("listings/a1/img.png", res.ImageKey)
}

func (s *listingSuite) TestGetNotFound() {
	s.q.On("FindOne", mockCtx, domain.TableListings, bson.M{"_id": "a1"}, mock.Anything).Return(query.ErrNotFound).Once()

	_, err := s.im.Get(mockCtx, "a1")
	s.Equal(domain.ErrNotFound, err)
}

func (s *listingSuite) TestInsert() {
	l := &listing.Listing{
		Id:        "a1",
		Owner:     owner,
		Price:     decimal.RequireFromString("250"),
		NetAmount: decimal.RequireFromString("249.75"),
		Currency:  "SOL",
		Status:    listing.StatusNew,
	}
	s.q.On("Insert", mockCtx, domain.TableListings, mock.MatchedBy(func(doc *listingDoc) bool {
		return doc.Id == "a1" &&
			doc.Price.String() == "250" &&
			doc.NetAmount.String() == "249.75" &&
			doc.Commission == nil &&
			doc.Transactions != nil
	})).Return(nil).Once()

	s.NoError(s.im.Insert(mockCtx, l))
}

func (s *listingSuite) TestInsertDuplicate() {
	s.q.On("Insert", mockCtx, domain.TableListings, mock.Anything).Return(query.ErrDuplicateKey).Once()

	s.Equal(domain.ErrConflict, s.im.Insert(mockCtx, &listing.Listing{Id: "a1"}))
}

func (s *listingSuite) TestConditionalUpdateRecord() {
	used := listing.StatusUsed
	tx := listing.Transaction{Hash: txHash, RecordedAt: time.Unix(100, 0)}
	filter := bson.M{"_id": "a1", "transactions.hash": bson.M{"$ne": txHash}}
	update := bson.M{
		"$set":  bson.M{"status": listing.StatusUsed},
		"$inc":  bson.M{"consumptionCount": 1},
		"$push": bson.M{"transactions": tx},
	}

	s.q.On("FindOneAndPatch", mockCtx, domain.TableListings, filter, update, mock.Anything).
		Run(func(args mock.Arguments) {
			doc := sampleDoc()
			doc.Status = listing.StatusUsed
			doc.ConsumptionCount = 1
			doc.Transactions = []listing.Transaction{tx}
			*args.Get(4).(*listingDoc) = doc
		}).Return(nil).Once()

	res, err := s.im.ConditionalUpdate(mockCtx, "a1",
		listing.Predicate{WithoutTransaction: &txHash},
		listing.Mutation{Status: &used, IncConsumption: 1, PushTransaction: &tx},
	)
	s.Require().NoError(err)
	s.Equal(listing.StatusUsed, res.Status)
	s.Equal(1, res.ConsumptionCount)
	s.True(res.HasTransaction(txHash))
}

func (s *listingSuite) TestConditionalUpdateEdit() {
	title := "new title"
	price := decimal.RequireFromString("2.5")
	net := decimal.RequireFromString("2.49375")
	currency := "USDC"
	update := bson.M{
		"$set": bson.M{
			"title":     "new title",
			"price":     d128("2.5"),
			"netAmount": d128("2.49375"),
			"currency":  "USDC",
		},
		"$unset": bson.M{"commission": ""},
	}

	s.q.On("FindOneAndPatch", mockCtx, domain.TableListings, bson.M{"_id": "a1"}, update, mock.Anything).Return(nil).Once()

	_, err := s.im.ConditionalUpdate(mockCtx, "a1", listing.Predicate{}, listing.Mutation{
		Title:           &title,
		Price:           &price,
		NetAmount:       &net,
		Currency:        &currency,
		UnsetCommission: true,
	})
	s.NoError(err)
}

func (s *listingSuite) TestConditionalUpdateConditionNotMet() {
	s.q.On("FindOneAndPatch", mockCtx, domain.TableListings, mock.Anything, mock.Anything, mock.Anything).Return(query.ErrNotFound).Once()
	s.q.On("Count", mockCtx, domain.TableListings, bson.M{"_id": "a1"}).Return(1, nil).Once()

	_, err := s.im.ConditionalUpdate(mockCtx, "a1", listing.Predicate{WithoutTransaction: &txHash}, listing.Mutation{IncConsumption: 1})
	s.Equal(listing.ErrConditionNotMet, err)
}

func (s *listingSuite) TestConditionalUpdateGone() {
	s.q.On("FindOneAndPatch", mockCtx, domain.TableListings, mock.Anything, mock.Anything, mock.Anything).Return(query.ErrNotFound).Once()
	s.q.On("Count", mockCtx, domain.TableListings, bson.M{"_id": "a1"}).Return(0, nil).Once()

	_, err := s.im.ConditionalUpdate(mockCtx, "a1", listing.Predicate{WithoutTransaction: &txHash}, listing.Mutation{IncConsumption: 1})
	s.Equal(domain.ErrNotFound, err)
}

func (s *listingSuite) TestConditionalUpdateGoneWithoutPredicate() {
	s.q.On("FindOneAndPatch", mockCtx, domain.TableListings, bson.M{"_id": "a1"}, mock.Anything, mock.Anything).Return(query.ErrNotFound).Once()

	_, err := s.im.ConditionalUpdate(mockCtx, "a1", listing.Predicate{}, listing.Mutation{IncConsumption: 1})
	s.Equal(domain.ErrNotFound, err)
}

func (s *listingSuite) TestDelete() {
	key := "listings/a1/img.png"
	s.q.On("Remove", mockCtx, domain.TableListings, bson.M{"_id": "a1", "imageKey": key}).Return(nil).Once()
	s.NoError(s.im.Delete(mockCtx, "a1", listing.Predicate{ImageKey: &key}))

	s.q.On("Remove", mockCtx, domain.TableListings, bson.M{"_id": "a2"}).Return(query.ErrNotFound).Once()
	s.Equal(domain.ErrNotFound, s.im.Delete(mockCtx, "a2", listing.Predicate{}))

	errConn := errors.New("connection reset")
	s.q.On("Remove", mockCtx, domain.TableListings, bson.M{"_id": "a3"}).Return(errConn).Once()
	s.Equal(errConn, s.im.Delete(mockCtx, "a3", listing.Predicate{}))
}

func (s *listingSuite) TestDeleteImageSwapped() {
	key := "listings/a1/old.png"
	s.q.On("Remove", mockCtx, domain.TableListings, bson.M{"_id": "a1", "imageKey": key}).Return(query.ErrNotFound).Once()
	s.q.On("Count", mockCtx, domain.TableListings, bson.M{"_id": "a1"}).Return(1, nil).Once()
	s.Equal(listing.ErrConditionNotMet, s.im.Delete(mockCtx, "a1", listing.Predicate{ImageKey: &key}))

	s.q.On("Remove", mockCtx, domain.TableListings, bson.M{"_id": "a2", "imageKey": key}).Return(query.ErrNotFound).Once()
	s.q.On("Count", mockCtx, domain.TableListings, bson.M{"_id": "a2"}).Return(0, nil).Once()
	s.Equal(domain.ErrNotFound, s.im.Delete(mockCtx, "a2", listing.Predicate{ImageKey: &key}))
}

func (s *listingSuite) TestFindExpired() {
	now := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	s.q.On("Search", mockCtx, domain.TableListings, 0, 10, "expiresAt", bson.M{"expiresAt": bson.M{"$lte": now}}, mock.Anything).
		Run(func(args mock.Arguments) {
			docs := args.Get(6).(*[]*listingDoc)
			d := sampleDoc()
			*docs = append(*docs, &d)
		}).Return(nil).Once()

	res, err := s.im.FindExpired(mockCtx, now, 10)
	s.Require().NoError(err)
	s.Require().Len(res, 1)
	s.Equal("a1", res[0].Id)
}

func (s *listingSuite) TestFindByOwner() {
	s.q.On("Search", mockCtx, domain.TableListings, 0, 0, "-createdAt", bson.M{"owner": owner}, mock.Anything).Return(nil).Once()

	res, err := s.im.FindByOwner(mockCtx, owner)
	s.NoError(err)
	s.Empty(res)
}

func (s *listingSuite) TestEnsureIndexes() {
	s.q.On("EnsureIndexes", mockCtx, domain.TableListings, mock.MatchedBy(func(idx []query.Index) bool {
		return len(idx) == 2 && idx[0].Keys[0].Key == "owner" && idx[1].Keys[0].Key == "expiresAt"
	})).Return(nil).Once()

	s.NoError(s.im.EnsureIndexes(mockCtx))
}
