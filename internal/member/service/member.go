package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/momentree/momentree/internal/member/domain"
	"github.com/momentree/momentree/internal/member/store"
)

// MemberService owns the activation state machine: PREACTIVE -> ACTIVE via
// explicit activation, ACTIVE -> DELETE on account removal. Login never
// touches status; these are the only transitions.
type MemberService struct {
	Members store.Members
}

// GetMemberByID fetches a member by internal id.
func (s *MemberService) GetMemberByID(ctx context.Context, memberID string) (domain.Member, error) {
	return s.Members.GetMemberByID(ctx, memberID)
}

// Activate sets the nickname and moves the member to ACTIVE. Any state other
// than PREACTIVE fails with ErrInvalidMemberState and leaves the nickname
// untouched.
func (s *MemberService) Activate(ctx context.Context, memberID, nickname string) (domain.Member, error) {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		return domain.Member{}, fmt.Errorf("%w: empty nickname", ErrInvalidMemberState)
	}

	member, err := s.Members.GetMemberByID(ctx, memberID)
	if err != nil {
		return domain.Member{}, err
	}
	if !member.Status.CanActivate() {
		return domain.Member{}, ErrInvalidMemberState
	}

	// The update is guarded on status in SQL as well; a lost race surfaces
	// as ErrNotFound and is reported as an invalid state.
	if err := s.Members.Activate(ctx, memberID, nickname); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Member{}, ErrInvalidMemberState
		}
		return domain.Member{}, err
	}

	member.Status = domain.StatusActive
	member.Nickname = nickname
	return member, nil
}

// Delete moves an ACTIVE member to DELETE. The row stays for attribution;
// the member simply stops being authenticatable.
func (s *MemberService) Delete(ctx context.Context, memberID string) error {
	member, err := s.Members.GetMemberByID(ctx, memberID)
	if err != nil {
		return err
	}
	if !member.Status.CanDelete() {
		return ErrInvalidMemberState
	}

	if err := s.Members.MarkDeleted(ctx, memberID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidMemberState
		}
		return err
	}
	return nil
}
