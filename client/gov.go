package client

import (
	"context"

	errorsmod "cosmossdk.io/errors"

	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/query"
	govv1beta1 "github.com/cosmos/cosmos-sdk/x/gov/types/v1beta1"

	"github.com/initia-labs/gaia-sdk-go/rpc"
	"github.com/initia-labs/gaia-sdk-go/types"
)

// Gov submits, funds and votes on v1beta1 proposals.
type Gov struct {
	c *Client
}

// SubmitTextProposal submits a text proposal with an initial deposit,
// which may be empty.
func (g Gov) SubmitTextProposal(ctx context.Context, title, description string, deposit sdk.Coins, baseTx types.BaseTx) (*rpc.TxResult, error) {
	if title == "" {
		return nil, errorsmod.Wrap(types.ErrInvalidArgument, "proposal title can not be empty")
	}
	if description == "" {
		return nil, errorsmod.Wrap(types.ErrInvalidArgument, "proposal description can not be empty")
	}
	if err := types.ValidateCoins(deposit); err != nil {
		return nil, err
	}

	proposer, err := g.c.senderAddress(baseTx.From)
	if err != nil {
		return nil, err
	}

	content, err := codectypes.NewAnyWithValue(&govv1beta1.TextProposal{Title: title, Description: description})
	if err != nil {
		return nil, errorsmod.Wrap(types.ErrInvalidArgument, err.Error())
	}

	return g.c.send(ctx, baseTx, &govv1beta1.MsgSubmitProposal{
		Content:        content,
		InitialDeposit: sdk.NewCoins(deposit...),
		Proposer:       proposer,
	})
}

func (g Gov) Deposit(ctx context.Context, proposalID uint64, amount sdk.Coins, baseTx types.BaseTx) (*rpc.TxResult, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}

	depositor, err := g.c.senderAddress(baseTx.From)
	if err != nil {
		return nil, err
	}

	return g.c.send(ctx, baseTx, &govv1beta1.MsgDeposit{
		ProposalId: proposalID,
		Depositor:  depositor,
		Amount:     sdk.NewCoins(amount...),
	})
}

func (g Gov) Vote(ctx context.Context, proposalID uint64, option govv1beta1.VoteOption, baseTx types.BaseTx) (*rpc.TxResult, error) {
	if !govv1beta1.ValidVoteOption(option) {
		return nil, errorsmod.Wrapf(types.ErrInvalidArgument, "invalid vote option %s", option)
	}

	voter, err := g.c.senderAddress(baseTx.From)
	if err != nil {
		return nil, err
	}

	return g.c.send(ctx, baseTx, &govv1beta1.MsgVote{
		ProposalId: proposalID,
		Voter:      voter,
		Option:     option,
	})
}

func (g Gov) QueryProposal(ctx context.Context, proposalID uint64) (govv1beta1.Proposal, error) {
	var resp govv1beta1.QueryProposalResponse
	if err := g.c.querier.Query(ctx, "/cosmos.gov.v1beta1.Query/Proposal",
		&govv1beta1.QueryProposalRequest{ProposalId: proposalID}, &resp); err != nil {
		return govv1beta1.Proposal{}, err
	}

	return resp.Proposal, nil
}

// QueryProposals lists proposals. Zero filters match everything.
func (g Gov) QueryProposals(
	ctx context.Context,
	status govv1beta1.ProposalStatus,
	voter, depositor string,
	page *query.PageRequest,
) (govv1beta1.Proposals, error) {
	var resp govv1beta1.QueryProposalsResponse
	if err := g.c.querier.Query(ctx, "/cosmos.gov.v1beta1.Query/Proposals", &govv1beta1.QueryProposalsRequest{
		ProposalStatus: status,
		Voter:          voter,
		Depositor:      depositor,
		Pagination:     page,
	}, &resp); err != nil {
		return nil, err
	}

	return resp.Proposals, nil
}

func (g Gov) QueryVote(ctx context.Context, proposalID uint64, voter string) (govv1beta1.Vote, error) {
	var resp govv1beta1.QueryVoteResponse
	if err := g.c.querier.Query(ctx, "/cosmos.gov.v1beta1.Query/Vote",
		&govv1beta1.QueryVoteRequest{ProposalId: proposalID, Voter: voter}, &resp); err != nil {
		return govv1beta1.Vote{}, err
	}

	return resp.Vote, nil
}

func (g Gov) QueryDeposit(ctx context.Context, proposalID uint64, depositor string) (govv1beta1.Deposit, error) {
	var resp govv1beta1.QueryDepositResponse
	if err := g.c.querier.Query(ctx, "/cosmos.gov.v1beta1.Query/Deposit",
		&govv1beta1.QueryDepositRequest{ProposalId: proposalID, Depositor: depositor}, &resp); err != nil {
		return govv1beta1.Deposit{}, err
	}

	return resp.Deposit, nil
}

func (g Gov) QueryTally(ctx context.Context, proposalID uint64) (govv1beta1.TallyResult, error) {
	var resp govv1beta1.QueryTallyResultResponse
	if err := g.c.querier.Query(ctx, "/cosmos.gov.v1beta1.Query/TallyResult",
		&govv1beta1.QueryTallyResultRequest{ProposalId: proposalID}, &resp); err != nil {
		return govv1beta1.TallyResult{}, err
	}

	return resp.Tally, nil
}

// QueryParams returns one parameter set: "voting", "tallying" or "deposit".
func (g Gov) QueryParams(ctx context.Context, paramsType string) (*govv1beta1.QueryParamsResponse, error) {
	switch paramsType {
	case "voting", "tallying", "deposit":
	default:
		return nil, errorsmod.Wrapf(types.ErrInvalidArgument, "unknown gov params type %q", paramsType)
	}

	var resp govv1beta1.QueryParamsResponse
	if err := g.c.querier.Query(ctx, "/cosmos.gov.v1beta1.Query/Params",
		&govv1beta1.QueryParamsRequest{ParamsType: paramsType}, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}
