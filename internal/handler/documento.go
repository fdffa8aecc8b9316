package handler

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Roezin7/SistemaGestion/internal/models"
	"github.com/Roezin7/SistemaGestion/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// maxDocumentosPorCarga limits one upload request to five files.
const maxDocumentosPorCarga = 5

// DocumentoHandler serves the per-cliente document uploads.
type DocumentoHandler struct {
	DB        *gorm.DB
	UploadDir string
}

func NewDocumentoHandler(db *gorm.DB, uploadDir string) *DocumentoHandler {
	return &DocumentoHandler{DB: db, UploadDir: uploadDir}
}

type documentoResp struct {
	ID            uint   `json:"id"`
	ClienteID     uint   `json:"cliente_id"`
	NombreArchivo string `json:"nombre_archivo"`
	RutaArchivo   string `json:"ruta_archivo"`
}

func toDocumentoResp(d *models.DocumentoCliente) documentoResp {
	return documentoResp{
		ID:            d.ID,
		ClienteID:     d.ClienteID,
		NombreArchivo: d.NombreArchivo,
		RutaArchivo:   d.RutaArchivo,
	}
}

// Upload stores up to five files for a cliente. Files land on disk under
// uuid names; the original filename is kept only as display metadata.
func (h *DocumentoHandler) Upload(c *gin.Context) {
	clienteID, err := strconv.Atoi(c.Param("id"))
	if err != nil || clienteID <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "ID inválido")
		return
	}

	var cliente models.Cliente
	if err := h.DB.First(&cliente, clienteID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "Cliente no encontrado")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Error al consultar cliente")
		}
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Formulario inválido")
		return
	}
	archivos := form.File["documentos"]
	if len(archivos) == 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "No se enviaron archivos")
		return
	}
	if len(archivos) > maxDocumentosPorCarga {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam,
			fmt.Sprintf("Máximo %d archivos por carga", maxDocumentosPorCarga))
		return
	}

	if err := os.MkdirAll(h.UploadDir, 0o755); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Error al preparar almacenamiento")
		return
	}

	docs := make([]documentoResp, 0, len(archivos))
	for _, archivo := range archivos {
		nombre := uuid.New().String() + filepath.Ext(archivo.Filename)
		ruta := filepath.Join(h.UploadDir, nombre)

		if err := c.SaveUploadedFile(archivo, ruta); err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Error al guardar archivo")
			return
		}

		doc := models.DocumentoCliente{
			ClienteID:     cliente.ID,
			RutaArchivo:   ruta,
			NombreArchivo: archivo.Filename,
		}
		if err := h.DB.Create(&doc).Error; err != nil {
			_ = os.Remove(ruta)
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Error al registrar documento")
			return
		}
		docs = append(docs, toDocumentoResp(&doc))
	}
	registrarHistorial(h.DB, c, fmt.Sprintf("Se subieron documentos para cliente id %d", cliente.ID))

	util.Success(c, util.Response{"documentos": docs})
}

// List returns the documents attached to a cliente.
func (h *DocumentoHandler) List(c *gin.Context) {
	clienteID, err := strconv.Atoi(c.Param("id"))
	if err != nil || clienteID <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "ID inválido")
		return
	}

	var docs []models.DocumentoCliente
	if err := h.DB.Where("cliente_id = ?", clienteID).Find(&docs).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Error al consultar documentos")
		return
	}

	items := make([]documentoResp, 0, len(docs))
	for i := range docs {
		items = append(items, toDocumentoResp(&docs[i]))
	}
	util.Success(c, util.Response{"documentos": items})
}

type renameDocumentoReq struct {
	NuevoNombre string `json:"nuevo_nombre" binding:"required,max=255"`
}

// Rename changes the display name of a document; the file on disk keeps
// its uuid name.
func (h *DocumentoHandler) Rename(c *gin.Context) {
	docID, err := strconv.Atoi(c.Param("docId"))
	if err != nil || docID <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "ID inválido")
		return
	}

	var req renameDocumentoReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Parámetros inválidos")
		return
	}

	var doc models.DocumentoCliente
	if err := h.DB.First(&doc, docID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "Documento no encontrado")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Error al consultar documento")
		}
		return
	}

	doc.NombreArchivo = req.NuevoNombre
	if err := h.DB.Save(&doc).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Error al renombrar documento")
		return
	}
	registrarHistorial(h.DB, c, fmt.Sprintf("Se renombró documento id %d", doc.ID))

	util.Success(c, util.Response{"documento": toDocumentoResp(&doc)})
}

// Delete removes a document record and its file on disk.
func (h *DocumentoHandler) Delete(c *gin.Context) {
	docID, err := strconv.Atoi(c.Param("docId"))
	if err != nil || docID <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "ID inválido")
		return
	}

	var doc models.DocumentoCliente
	if err := h.DB.First(&doc, docID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "Documento no encontrado")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Error al consultar documento")
		}
		return
	}

	if err := h.DB.Delete(&models.DocumentoCliente{}, doc.ID).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Error al eliminar documento")
		return
	}
	if doc.RutaArchivo != "" {
		_ = os.Remove(doc.RutaArchivo)
	}
	registrarHistorial(h.DB, c, fmt.Sprintf("Se eliminó documento id %d", doc.ID))

	util.Success(c, util.Response{"message": "Documento eliminado correctamente"})
}
