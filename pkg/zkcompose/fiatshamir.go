package zkcompose

import (
	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/sigma"
	"github.com/coinbase/cb-zkcompose-go/pkg/zkcompose/transcript"
)

// deriveChallenge absorbs every statement's contribution in order, then the
// context and the nonce, and squeezes the joint challenge. It takes the
// complete commitment list so no challenge can exist before every
// contribution is in.
func deriveChallenge(domain string, spec *ProofSpec, commitments [][]byte, nonce []byte) (transcript.Challenge, error) {
	tr := transcript.New(domain)
	tr.AppendUint64("statement-count", uint64(len(spec.statements)))
	for i, st := range spec.statements {
		contrib, err := sigma.Contribution(st, commitments[i])
		if err != nil {
			return transcript.Challenge{}, err
		}
		tr.AppendUint64("statement-index", uint64(i))
		tr.Append("kind", []byte{byte(st.Kind())})
		tr.Append("contribution", contrib)
	}
	tr.AppendUint64("class-count", uint64(len(spec.classes)))
	for _, class := range spec.classes {
		tr.AppendUint64("class-size", uint64(len(class)))
		for _, ref := range class {
			tr.AppendUint64("ref-statement", uint64(ref.Statement))
			tr.AppendUint64("ref-slot", uint64(ref.Slot))
		}
	}
	tr.Append("context", spec.context)
	tr.Append("nonce", nonce)
	return tr.Challenge("challenge"), nil
}
