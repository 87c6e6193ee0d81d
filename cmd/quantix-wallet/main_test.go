package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantixorg/libquantix-go/tx"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

// hashRecipient is a well-formed hash160-0x address.
const hashRecipient = "0x2222222222222222222222222222222222222222"

type cli struct {
	t       *testing.T
	dataDir string
	environ map[string]string
}

func newCLI(t *testing.T, scheme string) *cli {
	t.Helper()
	return &cli{t: t, dataDir: t.TempDir(), environ: map[string]string{
		"QUANTIX_ADDRESS_SCHEME": scheme,
		"QUANTIX_NETWORK":        "regtest",
	}}
}

// run executes the CLI and returns exit code, stdout, stderr.
func (c *cli) run(args ...string) (int, string, string) {
	c.t.Helper()
	var out, errOut bytes.Buffer
	full := append([]string{"-datadir", c.dataDir}, args...)
	code := run(context.Background(), full, c.environ, &out, &errOut)
	return code, out.String(), errOut.String()
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	code, out, errOut := c.run(args...)
	require.Equal(c.t, exitOK, code, "stderr: %s", errOut)
	return out
}

// fieldValue extracts "key: value" from command output.
func fieldValue(t *testing.T, out, key string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if v, ok := strings.CutPrefix(line, key+": "); ok {
			return v
		}
	}
	t.Fatalf("no %q in output %q", key, out)
	return ""
}

// fakeLedger is a JSON-RPC ledger node holding UTXOs per address.
type fakeLedger struct {
	mu        sync.Mutex
	utxos     map[string][]tx.UnspentOutput
	submitted []json.RawMessage
}

func (l *fakeLedger) serve(t *testing.T) *httptest.Server {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     int64             `json:"id"`
			Method string            `json:"method"`
			Params []json.RawMessage `json:"params"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		l.mu.Lock()
		defer l.mu.Unlock()
		var result interface{}
		switch req.Method {
		case "listunspent":
			var addr string
			require.NoError(t, json.Unmarshal(req.Params[0], &addr))
			list := make([]map[string]interface{}, 0)
			for _, u := range l.utxos[addr] {
				list = append(list, map[string]interface{}{
					"txOutId": u.OutputID, "txOutIndex": u.OutputIndex, "address": u.OwnerAddress, "amount": u.Amount,
				})
			}
			result = list
		case "sendtransaction":
			l.submitted = append(l.submitted, req.Params[0])
			decoded, err := tx.DecodeJSON(req.Params[0])
			require.NoError(t, err)
			result = decoded.ID
		default:
			t.Errorf("unexpected method %q", req.Method)
		}
		raw, _ := json.Marshal(result)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"id": req.ID, "result": json.RawMessage(raw), "error": nil})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRun_Usage(t *testing.T) {
	var out, errOut bytes.Buffer
	assert.Equal(t, exitUsage, run(context.Background(), nil, nil, &out, &errOut))
	assert.Contains(t, errOut.String(), "keygen")

	errOut.Reset()
	assert.Equal(t, exitUsage, run(context.Background(), []string{"frobnicate"}, nil, &out, &errOut))
	assert.Contains(t, errOut.String(), `unknown command "frobnicate"`)
}

func TestRun_RequiresAddressScheme(t *testing.T) {
	c := newCLI(t, "")
	code, _, errOut := c.run("keygen")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, errOut, "address scheme")
}

func TestMnemonic(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run(context.Background(), []string{"mnemonic", "-words", "12"}, nil, &out, &errOut)
	require.Equal(t, exitOK, code, errOut.String())
	assert.Len(t, strings.Fields(out.String()), 12)

	code = run(context.Background(), []string{"mnemonic", "-words", "13"}, nil, &out, &errOut)
	assert.Equal(t, exitError, code)
}

func TestKeygen_AddressAndList(t *testing.T) {
	c := newCLI(t, "hash160-0x")
	outDir := t.TempDir()

	out := c.mustRun("keygen", "-label", "main", "-out", outDir)
	addr := fieldValue(t, out, "address")
	exportPath := fieldValue(t, out, "export")
	assert.True(t, strings.HasPrefix(addr, "0x"))
	assert.Equal(t, filepath.Join(outDir, "quantix_wallet_"+addr[2:10]+".json"), exportPath)

	got := c.mustRun("address", "-file", exportPath)
	assert.Equal(t, addr+"\n", got)

	listed := c.mustRun("list")
	assert.Contains(t, listed, addr)
	assert.Contains(t, listed, "main")
	assert.Contains(t, listed, "encrypted=false")
}

func TestRecover_Deterministic(t *testing.T) {
	c1 := newCLI(t, "hash160-0x")
	c2 := newCLI(t, "hash160-0x")

	a1 := fieldValue(t, c1.mustRun("recover", "-mnemonic", testMnemonic), "address")
	a2 := fieldValue(t, c2.mustRun("recover", "-mnemonic", testMnemonic), "address")
	assert.Equal(t, a1, a2)

	// A second restore into the same keystore is a duplicate.
	code, _, errOut := c1.run("recover", "-mnemonic", testMnemonic)
	assert.Equal(t, exitError, code)
	assert.Contains(t, errOut, "already exists")

	code, _, _ = c1.run("recover", "-mnemonic", "not a valid phrase")
	assert.Equal(t, exitError, code)
}

func TestBalanceSendVerify(t *testing.T) {
	c := newCLI(t, "pubkey-hex")
	outDir := t.TempDir()
	c.environ["QUANTIX_PASSWORD"] = "hunter2"

	out := c.mustRun("keygen", "-out", outDir)
	from := fieldValue(t, out, "address")
	exportPath := fieldValue(t, out, "export")
	assert.Contains(t, c.mustRun("list"), "encrypted=true")
	to := fieldValue(t, c.mustRun("keygen", "-out", t.TempDir()), "address")

	ledger := &fakeLedger{utxos: map[string][]tx.UnspentOutput{
		from: {
			{OutputID: "aa", OutputIndex: 0, OwnerAddress: from, Amount: 50},
			{OutputID: "bb", OutputIndex: 1, OwnerAddress: from, Amount: 25},
		},
	}}
	c.environ["QUANTIX_LEDGER_URL"] = ledger.serve(t).URL

	assert.Equal(t, "75\n", c.mustRun("balance", "-address", from))

	// Recipients outside the configured address scheme are refused before
	// anything reaches the ledger.
	for _, bad := range []string{"typo-not-an-address", hashRecipient} {
		code, _, errOut := c.run("send", "-from", from, "-to", bad, "-amount", "50")
		assert.Equal(t, exitError, code, bad)
		assert.Contains(t, errOut, "invalid address", bad)
	}
	require.Empty(t, ledger.submitted)

	code, sendOut, sendLog := c.run("send", "-from", from, "-to", to, "-amount", "60")
	require.Equal(t, exitOK, code, sendLog)
	txid := strings.TrimSpace(sendOut)
	assert.Contains(t, sendLog, "transaction submitted", "logs go to the stderr writer")
	require.Len(t, ledger.submitted, 1)
	sent, err := tx.DecodeJSON(ledger.submitted[0])
	require.NoError(t, err)
	assert.Equal(t, sent.ID, txid)
	assert.Equal(t, []tx.TxOutput{{Address: to, Amount: 60}, {Address: from, Amount: 15}}, sent.Outputs)

	txFile := filepath.Join(t.TempDir(), "tx.json")
	require.NoError(t, os.WriteFile(txFile, ledger.submitted[0], 0600))

	assert.Contains(t, c.mustRun("verify", "-tx", txFile, "-owner", from), "valid: "+txid)
	assert.Contains(t, c.mustRun("verify", "-tx", txFile, "-wallet", exportPath), "valid: "+txid)

	// Tampering with an output breaks verification.
	tampered := bytes.Replace(ledger.submitted[0], []byte(`"amount":60`), []byte(`"amount":61`), 1)
	require.NoError(t, os.WriteFile(txFile, tampered, 0600))
	code, _, _ = c.run("verify", "-tx", txFile, "-owner", from)
	assert.Equal(t, exitError, code)
}

func TestSend_Errors(t *testing.T) {
	c := newCLI(t, "hash160-0x")
	from := fieldValue(t, c.mustRun("recover", "-mnemonic", testMnemonic, "-password", "pw"), "address")

	ledger := &fakeLedger{utxos: map[string][]tx.UnspentOutput{
		from: {{OutputID: "aa", OwnerAddress: from, Amount: 5}},
	}}
	c.environ["QUANTIX_LEDGER_URL"] = ledger.serve(t).URL

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing flags", []string{"send", "-from", from}, "required"},
		{"encrypted without password", []string{"send", "-from", from, "-to", hashRecipient, "-amount", "1"}, "encrypted"},
		{"wrong password", []string{"send", "-from", from, "-to", hashRecipient, "-amount", "1", "-password", "nope"}, "decryption failed"},
		{"unknown wallet", []string{"send", "-from", "0xunknown", "-to", hashRecipient, "-amount", "1"}, "not found"},
		{"invalid recipient", []string{"send", "-from", from, "-to", "0xr", "-amount", "1", "-password", "pw"}, "invalid address"},
		{"insufficient funds", []string{"send", "-from", from, "-to", hashRecipient, "-amount", "6", "-password", "pw"}, "insufficient"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut := c.run(tt.args...)
			assert.Equal(t, exitError, code)
			assert.Contains(t, errOut, tt.want)
		})
	}
	assert.Empty(t, ledger.submitted)
}

func TestEnvironMap(t *testing.T) {
	m := environMap([]string{"A=1", "B=x=y", "broken"})
	assert.Equal(t, map[string]string{"A": "1", "B": "x=y"}, m)
}
