package services

import (
	"encoding/xml"
	"fmt"

	"github.com/google/uuid"
	"github.com/moov-io/iso20022/pkg/common"
	"github.com/moov-io/iso20022/pkg/pacs_v08"
	"github.com/ruralpay/banksim/internal/config"
	"github.com/ruralpay/banksim/internal/models"
)

const Pacs008MessageType = "pacs.008.001.08"

// ISO20022Service renders completed transfers as pacs.008 credit transfer
// advices. Both parties are accounts of this bank.
type ISO20022Service struct {
	currency string
	bic      string
}

func NewISO20022Service(cfg config.BankConfig) *ISO20022Service {
	return &ISO20022Service{
		currency: cfg.Currency,
		bic:      cfg.BIC,
	}
}

// TransferAdvice builds the pacs.008 document for a receipt and returns it as XML.
func (iso *ISO20022Service) TransferAdvice(receipt *models.TransferReceipt) (string, error) {
	doc, err := iso.CreatePacs008(receipt)
	if err != nil {
		return "", err
	}
	return iso.ConvertToXML(doc)
}

// CreatePacs008 creates a pacs.008 FIToFICustomerCreditTransfer message
func (iso *ISO20022Service) CreatePacs008(receipt *models.TransferReceipt) (*pacs_v08.FIToFICustomerCreditTransferV08, error) {
	if receipt == nil {
		return nil, fmt.Errorf("transfer receipt is required")
	}

	msgId := uuid.New().String()
	creDtTm := receipt.Timestamp
	settlementDate := receipt.Timestamp
	amount := receipt.Amount.InexactFloat64()
	txId := receipt.ID
	if len(txId) > 35 {
		txId = txId[:35]
	}

	doc := &pacs_v08.FIToFICustomerCreditTransferV08{
		GrpHdr: pacs_v08.GroupHeader93{
			MsgId:   common.Max35Text(msgId[:35]),
			CreDtTm: common.ISODateTime(creDtTm),
			NbOfTxs: "1",
			TtlIntrBkSttlmAmt: &pacs_v08.ActiveCurrencyAndAmount{
				Ccy:   common.ActiveCurrencyCode(iso.currency),
				Value: amount,
			},
			IntrBkSttlmDt: (*common.ISODate)(&settlementDate),
			SttlmInf: pacs_v08.SettlementInstruction7{
				SttlmMtd: "INDA", // settled on the books of this bank
			},
		},
		CdtTrfTxInf: []pacs_v08.CreditTransferTransaction39{
			{
				PmtId: pacs_v08.PaymentIdentification7{
					InstrId:    &[]common.Max35Text{common.Max35Text(txId)}[0],
					EndToEndId: common.Max35Text(txId),
					TxId:       &[]common.Max35Text{common.Max35Text(txId)}[0],
				},
				IntrBkSttlmAmt: pacs_v08.ActiveCurrencyAndAmount{
					Ccy:   common.ActiveCurrencyCode(iso.currency),
					Value: amount,
				},
				IntrBkSttlmDt: (*common.ISODate)(&settlementDate),
				ChrgBr:        "SLEV",
				DbtrAgt: pacs_v08.BranchAndFinancialInstitutionIdentification6{
					FinInstnId: pacs_v08.FinancialInstitutionIdentification18{
						BICFI: &[]common.BICFIDec2014Identifier{common.BICFIDec2014Identifier(iso.bic)}[0],
					},
				},
				Dbtr: pacs_v08.PartyIdentification135{
					Nm: &[]common.Max140Text{common.Max140Text(receipt.FromAccount)}[0],
				},
				CdtrAgt: pacs_v08.BranchAndFinancialInstitutionIdentification6{
					FinInstnId: pacs_v08.FinancialInstitutionIdentification18{
						BICFI: &[]common.BICFIDec2014Identifier{common.BICFIDec2014Identifier(iso.bic)}[0],
					},
				},
				Cdtr: pacs_v08.PartyIdentification135{
					Nm: &[]common.Max140Text{common.Max140Text(receipt.ToAccount)}[0],
				},
			},
		},
	}

	return doc, nil
}

// ConvertToXML converts ISO20022 document to XML string
func (iso *ISO20022Service) ConvertToXML(doc any) (string, error) {
	xmlData, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal XML: %w", err)
	}
	return xml.Header + string(xmlData), nil
}
