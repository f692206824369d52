package lot

import (
	"errors"
	"slices"
	"strings"
	"time"

	"lots/internal/core/domain/model/kernel"
	"lots/internal/pkg/errs"
)

// LotTypeLoki is the only lot type handled by this registry.
const LotTypeLoki = "loki"

// MaxRelatedProcesses is how many assets a lot may be built from.
const MaxRelatedProcesses = 1

// Lot is the aggregate root of the registry: a sellable bundle of assets
// moving through approval, auction and sale.
//
// Lot owns its auctions, contracts, decisions, documents, related processes
// and rectification period. Invariants:
//   - status is a valid Status
//   - at most MaxDecisions decisions, at most one of them from the asset
//   - at most MaxRelatedProcesses related processes
//   - zero or exactly AuctionCount auctions
//   - every contract has the lot's type
//   - the rectification period, once set, changes only by administrative override
type Lot struct {
	id                  kernel.UUID
	status              Status
	title               string
	description         string
	lotType             string
	owner               string
	ownerToken          string
	relatedProcesses    []RelatedProcess
	decisions           []Decision
	documents           []Document
	auctions            []*Auction
	contracts           []Contract
	rectificationPeriod *kernel.Period
	dateCreated         time.Time
	dateModified        time.Time
	revision            int
	isConstructed       bool
}

// NewLotParams are the inputs of a newly registered lot.
type NewLotParams struct {
	ID             kernel.UUID
	Owner          string
	OwnerToken     string
	Title          string
	Description    string
	RelatedProcess RelatedProcess
	Decisions      []Decision
	Documents      []Document
	Now            time.Time
}

// NewLot registers a lot in draft status. At most one decision, taken about
// the lot itself, may be supplied on creation.
func NewLot(p NewLotParams) (*Lot, error) {
	l := &Lot{
		status:        Draft,
		lotType:       LotTypeLoki,
		dateCreated:   p.Now,
		dateModified:  p.Now,
		isConstructed: true,
	}

	if err := errors.Join(
		l.setID(p.ID),
		l.setOwner(p.Owner, p.OwnerToken),
		l.setTitle(p.Title),
		l.setRelatedProcesses([]RelatedProcess{p.RelatedProcess}),
		l.setInitialDecisions(p.Decisions),
	); err != nil {
		return nil, err
	}

	l.description = p.Description
	l.documents = slices.Clone(p.Documents)
	return l, nil
}

// RestoreLotParams is the persisted state of a lot.
type RestoreLotParams struct {
	ID                  kernel.UUID
	Status              Status
	Title               string
	Description         string
	LotType             string
	Owner               string
	OwnerToken          string
	RelatedProcesses    []RelatedProcess
	Decisions           []Decision
	Documents           []Document
	Auctions            []*Auction
	Contracts           []Contract
	RectificationPeriod *kernel.Period
	DateCreated         time.Time
	DateModified        time.Time
	Revision            int
}

// RestoreLot rebuilds a lot from storage. Only structural invariants are
// checked; lifecycle rules were enforced when the state was written.
func RestoreLot(p RestoreLotParams) (*Lot, error) {
	var err error
	err = errors.Join(err, p.ID.Validate(), p.Status.Validate(), validateDecisions(p.Decisions))
	if n := len(p.Auctions); n != 0 && n != AuctionCount {
		err = errors.Join(err, errs.NewValueIsInvalidError("auctions"))
	}
	if len(p.RelatedProcesses) > MaxRelatedProcesses {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError(
			"relatedProcesses", len(p.RelatedProcesses), 0, MaxRelatedProcesses))
	}
	if err != nil {
		return nil, err
	}

	auctions := make([]*Auction, 0, len(p.Auctions))
	for _, a := range SortAuctions(p.Auctions) {
		auctions = append(auctions, a.clone())
	}

	return &Lot{
		id:                  p.ID,
		status:              p.Status,
		title:               p.Title,
		description:         p.Description,
		lotType:             p.LotType,
		owner:               p.Owner,
		ownerToken:          p.OwnerToken,
		relatedProcesses:    slices.Clone(p.RelatedProcesses),
		decisions:           slices.Clone(p.Decisions),
		documents:           slices.Clone(p.Documents),
		auctions:            auctions,
		contracts:           slices.Clone(p.Contracts),
		rectificationPeriod: clonePeriod(p.RectificationPeriod),
		dateCreated:         p.DateCreated,
		dateModified:        p.DateModified,
		revision:            p.Revision,
		isConstructed:       true,
	}, nil
}

// Validate ensures the lot was built through NewLot or RestoreLot.
func (l *Lot) Validate() error {
	if l == nil || !l.isConstructed {
		return ErrLotIsNotConstructed
	}
	return nil
}

// Clone returns a deep copy. Operations that may fail work on a clone so
// that a failure leaves the original untouched.
func (l *Lot) Clone() *Lot {
	c := *l
	c.relatedProcesses = slices.Clone(l.relatedProcesses)
	c.decisions = slices.Clone(l.decisions)
	c.documents = slices.Clone(l.documents)
	c.contracts = slices.Clone(l.contracts)
	c.auctions = make([]*Auction, 0, len(l.auctions))
	for _, a := range l.auctions {
		c.auctions = append(c.auctions, a.clone())
	}
	c.rectificationPeriod = clonePeriod(l.rectificationPeriod)
	return &c
}

// ID returns the lot id assigned on registration.
func (l *Lot) ID() kernel.UUID { return l.id }

// Status returns the current lifecycle status.
func (l *Lot) Status() Status { return l.status }

func (l *Lot) Title() string { return l.title }

func (l *Lot) Description() string { return l.description }

// LotType is always LotTypeLoki. Contracts inherit it.
func (l *Lot) LotType() string { return l.lotType }

// Owner returns the broker that registered the lot.
func (l *Lot) Owner() string { return l.owner }

// OwnerToken returns the secret a broker presents to act as Owner. It must
// never leave the registry except in the response to the create request.
func (l *Lot) OwnerToken() string { return l.ownerToken }

// RelatedProcesses returns a copy of the asset references, at most
// MaxRelatedProcesses of them.
func (l *Lot) RelatedProcesses() []RelatedProcess { return slices.Clone(l.relatedProcesses) }

// Decisions returns a copy of the decisions in the order they were supplied.
func (l *Lot) Decisions() []Decision { return slices.Clone(l.decisions) }

// Documents returns a copy of the attached document metadata, oldest first.
func (l *Lot) Documents() []Document { return slices.Clone(l.documents) }

// Contracts returns a copy of the sale contracts, oldest first.
func (l *Lot) Contracts() []Contract { return slices.Clone(l.contracts) }

func (l *Lot) DateCreated() time.Time { return l.dateCreated }

// DateModified is updated by Touch on every stored change.
func (l *Lot) DateModified() time.Time { return l.dateModified }

// Revision is the storage revision the lot was read at, used for optimistic
// locking.
//
// Example:
//
//	l, _ := repo.Get(ctx, id)                 // l.Revision() == 4
//	err := repo.Update(ctx, l, l.Revision())  // fails with a conflict unless the row is still at 4
func (l *Lot) Revision() int { return l.revision }

// Auctions returns copies of the auctions ordered by tenderAttempts.
func (l *Lot) Auctions() []*Auction {
	out := make([]*Auction, 0, len(l.auctions))
	for _, a := range l.auctions {
		out = append(out, a.clone())
	}
	return out
}

// RectificationPeriod returns the lot's rectification window, nil before pending.
func (l *Lot) RectificationPeriod() *kernel.Period {
	return clonePeriod(l.rectificationPeriod)
}

// NextCheck is when the chronograph should next look at the lot: the end
// of the rectification period while the lot is pending, nil otherwise.
func (l *Lot) NextCheck() *time.Time {
	if l.status != Pending || l.rectificationPeriod == nil {
		return nil
	}
	end := l.rectificationPeriod.EndDate()
	return &end
}

// HasDecisions reports whether at least one decision is attached.
func (l *Lot) HasDecisions() bool {
	return len(l.decisions) > 0
}

// HasCancellationDocument reports whether a cancellationDetails document is attached.
func (l *Lot) HasCancellationDocument() bool {
	return slices.ContainsFunc(l.documents, Document.IsCancellationDetails)
}

// ChangeStatus moves the lot to status to if the table allows role to do so.
func (l *Lot) ChangeStatus(to Status, role Role, table TransitionTable) error {
	if err := table.Check(l.status, to, role); err != nil {
		return err
	}
	l.status = to
	return nil
}

// ApplyCascade moves the lot to the status its auctions imply. It returns
// the previous status and whether anything changed.
func (l *Lot) ApplyCascade(evaluator CascadeEvaluator) (Status, bool) {
	from := l.status
	next, changed := evaluator.Evaluate(l)
	if changed {
		l.status = next
	}
	return from, changed
}

// StartRectificationPeriod sets the rectification window unless one exists.
// It reports whether the period was set.
func (l *Lot) StartRectificationPeriod(period kernel.Period) (bool, error) {
	if err := period.Validate(); err != nil {
		return false, err
	}
	if l.rectificationPeriod != nil {
		return false, nil
	}
	l.rectificationPeriod = &period
	return true, nil
}

// OverrideRectificationPeriod replaces the rectification window. Only
// Administrator may do this.
func (l *Lot) OverrideRectificationPeriod(period kernel.Period, role Role) error {
	if role != Administrator {
		return errs.NewForbiddenError("only Administrator can change the rectification period")
	}
	if err := period.Validate(); err != nil {
		return err
	}
	l.rectificationPeriod = &period
	return nil
}

// UpdateDetails replaces non-nil descriptive fields and reports whether
// anything changed.
func (l *Lot) UpdateDetails(title, description *string) (bool, error) {
	changed := false
	if title != nil && *title != l.title {
		if err := l.setTitle(*title); err != nil {
			return false, err
		}
		changed = true
	}
	if description != nil && *description != l.description {
		l.description = *description
		changed = true
	}
	return changed, nil
}

// ReplaceDecisions swaps the decision list.
//
// Rules:
//   - Owner may manage lot decisions but can't add, change or drop the asset decision
//   - Concierge may supply the asset decision but can't touch lot decisions
//   - Administrator is unrestricted
func (l *Lot) ReplaceDecisions(decisions []Decision, role Role) (bool, error) {
	if err := validateDecisions(decisions); err != nil {
		return false, err
	}

	switch role { //nolint:exhaustive // remaining roles can't manage decisions
	case Administrator:
	case Owner:
		current, hadAsset := assetDecision(l.decisions)
		proposed, hasAsset := assetDecision(decisions)
		if hadAsset != hasAsset || (hasAsset && !current.IsEqual(proposed)) {
			return false, errs.NewForbiddenError("can't update decision that was created from asset")
		}
	case Concierge:
		if !slices.EqualFunc(lotDecisions(l.decisions), lotDecisions(decisions), Decision.IsEqual) {
			return false, errs.NewForbiddenError("can't update decision that was created from lot")
		}
	default:
		return false, errs.NewForbiddenError(role.String() + " can't manage decisions")
	}

	if slices.EqualFunc(l.decisions, decisions, Decision.IsEqual) {
		return false, nil
	}
	l.decisions = slices.Clone(decisions)
	return true, nil
}

// AttachDocument appends document metadata. Document ids are unique per lot.
func (l *Lot) AttachDocument(doc Document) error {
	if err := doc.ID().Validate(); err != nil {
		return err
	}
	if slices.ContainsFunc(l.documents, func(d Document) bool { return d.id.IsEqual(doc.id) }) {
		return errs.NewValueIsInvalidError("document id is already used")
	}
	l.documents = append(l.documents, doc)
	return nil
}

// SetAuctions installs the auction sequence. Auctions are created all at
// once and never replaced.
func (l *Lot) SetAuctions(auctions []*Auction) error {
	if len(l.auctions) != 0 {
		return errs.NewValueIsInvalidError("lot already has auctions")
	}
	if len(auctions) != AuctionCount {
		return errs.NewValueIsOutOfRangeError("auctions", len(auctions), AuctionCount, AuctionCount)
	}
	l.auctions = SortAuctions(auctions)
	return nil
}

// UpdateAuctionTerms applies terms to one auction and re-derives the rest of
// the sequence.
func (l *Lot) UpdateAuctionTerms(auctionID kernel.UUID, terms AuctionTerms) error {
	a, err := l.auction(auctionID)
	if err != nil {
		return err
	}
	if err = a.Apply(terms); err != nil {
		return err
	}
	DeriveAuctionTerms(l.auctions)
	return nil
}

// ChangeAuctionStatus switches one auction's status and returns the previous one.
func (l *Lot) ChangeAuctionStatus(auctionID kernel.UUID, to AuctionStatus, role Role) (AuctionStatus, error) {
	if err := to.Validate(); err != nil {
		return AuctionStatusUnknown, err
	}
	a, err := l.auction(auctionID)
	if err != nil {
		return AuctionStatusUnknown, err
	}
	if !a.status.CanBecome(to) {
		return a.status, newForbiddenAuctionTransition(a.status, to, role)
	}
	from := a.status
	a.status = to
	return from, nil
}

// RelatedProcess returns the asset reference with id.
func (l *Lot) RelatedProcess(id kernel.UUID) (RelatedProcess, error) {
	i, err := l.relatedProcessIndex(id)
	if err != nil {
		return RelatedProcess{}, err
	}
	return l.relatedProcesses[i], nil
}

// AddRelatedProcess links the lot to an asset. A lot is built from at most
// MaxRelatedProcesses assets and process ids are unique per lot.
func (l *Lot) AddRelatedProcess(process RelatedProcess) error {
	if err := process.id.Validate(); err != nil {
		return err
	}
	if slices.ContainsFunc(l.relatedProcesses, func(p RelatedProcess) bool { return p.id.IsEqual(process.id) }) {
		return errs.NewValueIsInvalidError("related process id is already used")
	}
	if len(l.relatedProcesses) >= MaxRelatedProcesses {
		return errs.NewValueIsOutOfRangeErrorWithCause(
			"relatedProcesses", len(l.relatedProcesses)+1, 0, MaxRelatedProcesses,
			errors.New("can't add more than one related process to lot"))
	}
	l.relatedProcesses = append(l.relatedProcesses, process)
	return nil
}

// PatchRelatedProcess replaces the non-nil fields of one asset reference and
// reports whether anything changed.
func (l *Lot) PatchRelatedProcess(id kernel.UUID, relatedProcessID, identifier *string) (bool, error) {
	i, err := l.relatedProcessIndex(id)
	if err != nil {
		return false, err
	}
	p := l.relatedProcesses[i]
	before := p
	if relatedProcessID != nil {
		if strings.TrimSpace(*relatedProcessID) == "" {
			return false, errs.NewValueIsRequiredError("relatedProcessID")
		}
		p.relatedProcessID = *relatedProcessID
	}
	if identifier != nil {
		p.identifier = *identifier
	}
	if p == before {
		return false, nil
	}
	l.relatedProcesses[i] = p
	return true, nil
}

// DeleteRelatedProcess unlinks one asset reference.
func (l *Lot) DeleteRelatedProcess(id kernel.UUID) error {
	i, err := l.relatedProcessIndex(id)
	if err != nil {
		return err
	}
	l.relatedProcesses = slices.Delete(l.relatedProcesses, i, i+1)
	return nil
}

// Contract returns the contract with id.
func (l *Lot) Contract(id kernel.UUID) (Contract, error) {
	i, err := l.contractIndex(id)
	if err != nil {
		return Contract{}, err
	}
	return l.contracts[i], nil
}

// AddContract attaches a sale contract. The contract takes the lot type and
// contract ids are unique per lot.
func (l *Lot) AddContract(contract Contract) (Contract, error) {
	if err := contract.id.Validate(); err != nil {
		return Contract{}, err
	}
	if slices.ContainsFunc(l.contracts, func(c Contract) bool { return c.id.IsEqual(contract.id) }) {
		return Contract{}, errs.NewValueIsInvalidError("contract id is already used")
	}
	contract.contractType = l.lotType
	l.contracts = append(l.contracts, contract)
	return contract, nil
}

// PatchContract applies patch to one contract. It returns the previous
// contract status and whether anything changed.
func (l *Lot) PatchContract(id kernel.UUID, patch ContractPatch, role Role) (ContractStatus, bool, error) {
	i, err := l.contractIndex(id)
	if err != nil {
		return ContractStatusUnknown, false, err
	}
	from := l.contracts[i].status
	next, changed, err := l.contracts[i].apply(patch, role)
	if err != nil {
		return from, false, err
	}
	l.contracts[i] = next
	return from, changed, nil
}

// ApplyContractOutcome settles a lot in active.contracting once its contracts
// are concluded: a complete contract sells the lot, and a lot whose every
// contract is unsuccessful is dissolved. It returns the previous status and
// whether anything changed.
func (l *Lot) ApplyContractOutcome() (Status, bool) {
	from := l.status
	if l.status != ActiveContracting || len(l.contracts) == 0 {
		return from, false
	}
	if slices.ContainsFunc(l.contracts, func(c Contract) bool { return c.status == ContractComplete }) {
		l.status = PendingSold
		return from, true
	}
	if !slices.ContainsFunc(l.contracts, func(c Contract) bool { return c.status != ContractUnsuccessful }) {
		l.status = PendingDissolution
		return from, true
	}
	return from, false
}

// Touch records a modification at now.
func (l *Lot) Touch(now time.Time) {
	l.dateModified = now
}

// SetRevision records the storage revision the lot was last written at.
func (l *Lot) SetRevision(revision int) {
	l.revision = revision
}

func (l *Lot) auction(id kernel.UUID) (*Auction, error) {
	for _, a := range l.auctions {
		if a.id.IsEqual(id) {
			return a, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("auction", id.String())
}

func (l *Lot) relatedProcessIndex(id kernel.UUID) (int, error) {
	i := slices.IndexFunc(l.relatedProcesses, func(p RelatedProcess) bool { return p.id.IsEqual(id) })
	if i < 0 {
		return -1, errs.NewObjectNotFoundError("related process", id.String())
	}
	return i, nil
}

func (l *Lot) contractIndex(id kernel.UUID) (int, error) {
	i := slices.IndexFunc(l.contracts, func(c Contract) bool { return c.id.IsEqual(id) })
	if i < 0 {
		return -1, errs.NewObjectNotFoundError("contract", id.String())
	}
	return i, nil
}

func (l *Lot) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	l.id = id
	return nil
}

func (l *Lot) setOwner(owner, token string) error {
	var err error
	if strings.TrimSpace(owner) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("owner"))
	}
	if strings.TrimSpace(token) == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("ownerToken"))
	}
	if err != nil {
		return err
	}
	l.owner = owner
	l.ownerToken = token
	return nil
}

func (l *Lot) setTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return errs.NewValueIsRequiredError("title")
	}
	l.title = title
	return nil
}

func (l *Lot) setRelatedProcesses(processes []RelatedProcess) error {
	for _, p := range processes {
		if err := p.id.Validate(); err != nil {
			return errs.NewValueIsRequiredErrorWithCause("relatedProcesses", err)
		}
	}
	l.relatedProcesses = slices.Clone(processes)
	return nil
}

func (l *Lot) setInitialDecisions(decisions []Decision) error {
	if len(decisions) > 1 {
		return errs.NewValueIsOutOfRangeErrorWithCause(
			"decisions", len(decisions), 0, 1, errors.New("can't add more than one decision to lot"))
	}
	for _, d := range decisions {
		if d.decisionOf != DecisionOfLot {
			return errs.NewValueIsInvalidErrorWithCause(
				"decisions", errors.New("only a lot decision can be set on creation"))
		}
	}
	l.decisions = slices.Clone(decisions)
	return nil
}

func lotDecisions(decisions []Decision) []Decision {
	out := make([]Decision, 0, len(decisions))
	for _, d := range decisions {
		if d.decisionOf == DecisionOfLot {
			out = append(out, d)
		}
	}
	return out
}

func clonePeriod(p *kernel.Period) *kernel.Period {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}
