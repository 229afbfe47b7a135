package common

// Domain separation tags for the protocol's Fiat-Shamir challenges. Every
// H_p call is tagged DomainPoKDL; H_sig, H_com, H_rnd, and H_sh are all
// tagged DomainMIACL and rely on their argument tuples, not extra per-label
// bytes, to stay distinct from one another.
const (
	DomainPoKDL = "DOMAIN_PoK_DL"
	DomainMIACL = "DOMAIN_MIACL"
)
